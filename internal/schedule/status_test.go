package schedule

import (
	"testing"
	"time"

	"nscal/internal/event"

	"github.com/stretchr/testify/assert"
)

func TestIsLive(t *testing.T) {
	ev := event.Event{
		ID:      "a",
		Date:    day(2025, time.June, 10),
		StartAt: instant(2025, time.June, 10, 18, 0),
		EndAt:   instant(2025, time.June, 10, 20, 0),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", time.Date(2025, time.June, 10, 17, 59, 0, 0, time.UTC), false},
		{"at start boundary", time.Date(2025, time.June, 10, 18, 0, 0, 0, time.UTC), true},
		{"in the middle", time.Date(2025, time.June, 10, 19, 0, 0, 0, time.UTC), true},
		{"at end boundary", time.Date(2025, time.June, 10, 20, 0, 0, 0, time.UTC), true},
		{"after end", time.Date(2025, time.June, 10, 20, 0, 1, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLive(ev, tt.now))
		})
	}
}

func TestIsLiveRequiresInstants(t *testing.T) {
	now := time.Date(2025, time.June, 10, 19, 0, 0, 0, time.UTC)

	noStart := event.Event{ID: "a", EndAt: instant(2025, time.June, 10, 20, 0)}
	noEnd := event.Event{ID: "b", StartAt: instant(2025, time.June, 10, 18, 0)}
	neither := event.Event{ID: "c", TimeText: "6:00 PM – 8:00 PM"}

	assert.False(t, IsLive(noStart, now))
	assert.False(t, IsLive(noEnd, now))
	assert.False(t, IsLive(neither, now))
}

func TestNextUpcoming(t *testing.T) {
	events := []event.Event{
		{ID: "past", StartAt: instant(2025, time.June, 9, 10, 0), EndAt: instant(2025, time.June, 9, 12, 0)},
		{ID: "later", StartAt: instant(2025, time.June, 12, 10, 0), EndAt: instant(2025, time.June, 12, 12, 0)},
		{ID: "soon", StartAt: instant(2025, time.June, 11, 10, 0), EndAt: instant(2025, time.June, 11, 12, 0)},
		{ID: "untimed", Date: day(2025, time.June, 11)},
	}
	now := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)

	i := NextUpcoming(events, now)
	assert.Equal(t, 2, i)
	assert.Equal(t, "soon", events[i].ID)
}

func TestNextUpcomingSuppressedWhileLive(t *testing.T) {
	events := []event.Event{
		{ID: "live", StartAt: instant(2025, time.June, 10, 14, 0), EndAt: instant(2025, time.June, 10, 16, 0)},
		{ID: "soon", StartAt: instant(2025, time.June, 10, 17, 0), EndAt: instant(2025, time.June, 10, 19, 0)},
	}
	now := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, -1, NextUpcoming(events, now))
}

func TestNextUpcomingTieGoesToInputOrder(t *testing.T) {
	events := []event.Event{
		{ID: "first", StartAt: instant(2025, time.June, 11, 10, 0), EndAt: instant(2025, time.June, 11, 12, 0)},
		{ID: "second", StartAt: instant(2025, time.June, 11, 10, 0), EndAt: instant(2025, time.June, 11, 11, 0)},
	}
	now := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, NextUpcoming(events, now))
}

func TestClassify(t *testing.T) {
	events := []event.Event{
		{ID: "ended", StartAt: instant(2025, time.June, 10, 8, 0), EndAt: instant(2025, time.June, 10, 9, 0)},
		{ID: "live1", StartAt: instant(2025, time.June, 10, 14, 0), EndAt: instant(2025, time.June, 10, 16, 0)},
		{ID: "live2", StartAt: instant(2025, time.June, 10, 14, 30), EndAt: instant(2025, time.June, 10, 17, 0)},
		{ID: "soon", StartAt: instant(2025, time.June, 10, 18, 0), EndAt: instant(2025, time.June, 10, 19, 0)},
	}
	now := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)

	statuses := Classify(events, now)

	assert.Equal(t, StatusLive, statuses["live1"])
	assert.Equal(t, StatusLive, statuses["live2"])
	assert.Equal(t, StatusNone, statuses["ended"])
	// No NEXT badge while anything is live
	assert.Equal(t, StatusNone, statuses["soon"])
}

func TestClassifyNextAfterLiveEnds(t *testing.T) {
	events := []event.Event{
		{ID: "ended", StartAt: instant(2025, time.June, 10, 14, 0), EndAt: instant(2025, time.June, 10, 16, 0)},
		{ID: "soon", StartAt: instant(2025, time.June, 10, 18, 0), EndAt: instant(2025, time.June, 10, 19, 0)},
	}
	now := time.Date(2025, time.June, 10, 16, 30, 0, 0, time.UTC)

	statuses := Classify(events, now)
	assert.Equal(t, StatusNext, statuses["soon"])
	assert.Equal(t, StatusNone, statuses["ended"])
}
