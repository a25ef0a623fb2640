package schedule

import (
	"testing"
	"time"

	"nscal/internal/event"

	"github.com/stretchr/testify/assert"
)

func filterNow() time.Time {
	return time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)
}

func TestFilterDatePresets(t *testing.T) {
	events := []event.Event{
		{ID: "yesterday", Date: day(2025, time.June, 9)},
		{ID: "today", Date: day(2025, time.June, 10)},
		{ID: "tomorrow", Date: day(2025, time.June, 11)},
		{ID: "in-six-days", Date: day(2025, time.June, 16)},
		{ID: "next-month", Date: day(2025, time.July, 15)},
	}
	matcher := NewAliasMatcher()

	tests := []struct {
		name   string
		preset RangePreset
		want   []string
	}{
		{"all", RangeAll, []string{"yesterday", "today", "tomorrow", "in-six-days", "next-month"}},
		{"today", RangeToday, []string{"today"}},
		{"tomorrow", RangeTomorrow, []string{"tomorrow"}},
		{"week", RangeWeek, []string{"today", "tomorrow", "in-six-days"}},
		{"month", RangeMonth, []string{"today", "tomorrow", "in-six-days"}},
		{"upcoming", RangeUpcoming, []string{"today", "tomorrow", "in-six-days", "next-month"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := FilterState{Range: DateRange{Preset: tt.preset}}
			got := Filter(events, st, matcher, filterNow())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// A multi-day event that started before the window still shows while it
// overlaps the window.
func TestFilterIncludesOngoingMultiDayEvent(t *testing.T) {
	hackathon := event.Event{
		ID:      "hackathon",
		Date:    day(2025, time.June, 8),
		StartAt: instant(2025, time.June, 8, 9, 0),
		EndAt:   instant(2025, time.June, 12, 18, 0),
	}
	matcher := NewAliasMatcher()

	st := FilterState{Range: DateRange{Preset: RangeToday}}
	got := Filter([]event.Event{hackathon}, st, matcher, filterNow())
	assert.Equal(t, []string{"hackathon"}, ids(got))
}

func TestFilterCustomRangeEndInclusive(t *testing.T) {
	events := []event.Event{
		{ID: "inside", Date: day(2025, time.June, 12)},
		{ID: "on-end-day", Date: day(2025, time.June, 14)},
		{ID: "past-end", Date: day(2025, time.June, 15)},
	}
	matcher := NewAliasMatcher()

	st := FilterState{Range: DateRange{
		Preset: RangeCustom,
		Start:  day(2025, time.June, 11),
		End:    day(2025, time.June, 14),
	}}
	got := Filter(events, st, matcher, filterNow())
	assert.Equal(t, []string{"inside", "on-end-day"}, ids(got))
}

func TestFilterNetworkStates(t *testing.T) {
	events := []event.Event{
		{ID: "a", Date: day(2025, time.June, 11), NetworkState: "Zuzalu City"},
		{ID: "b", Date: day(2025, time.June, 11), NetworkState: "Edge City"},
		{ID: "c", Date: day(2025, time.June, 11), NetworkState: "Prospera"},
	}
	matcher := NewAliasMatcher()

	st := FilterState{
		Range:         DateRange{Preset: RangeAll},
		NetworkStates: []string{"Zuzalu", "EdgeCity"},
	}
	got := Filter(events, st, matcher, filterNow())
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestFilterCommonsMatchesTag(t *testing.T) {
	events := []event.Event{
		{ID: "tagged", Date: day(2025, time.June, 11), NetworkState: "Zuzalu", Tags: []string{"Commons", "governance"}},
		{ID: "untagged", Date: day(2025, time.June, 11), NetworkState: "Zuzalu"},
	}
	matcher := NewAliasMatcher()

	st := FilterState{
		Range:         DateRange{Preset: RangeAll},
		NetworkStates: []string{CommonsState},
	}
	got := Filter(events, st, matcher, filterNow())
	assert.Equal(t, []string{"tagged"}, ids(got))
}

func TestFilterTypes(t *testing.T) {
	events := []event.Event{
		{ID: "irl", Date: day(2025, time.June, 11), Type: event.TypePhysical},
		{ID: "online", Date: day(2025, time.June, 11), Type: event.TypeOnline},
		{ID: "hybrid", Date: day(2025, time.June, 11), Type: event.TypeHybrid},
	}
	matcher := NewAliasMatcher()

	st := FilterState{
		Range: DateRange{Preset: RangeAll},
		Types: []event.Type{event.TypeOnline, event.TypeHybrid},
	}
	got := Filter(events, st, matcher, filterNow())
	assert.Equal(t, []string{"online", "hybrid"}, ids(got))
}

func TestFilterLocations(t *testing.T) {
	events := []event.Event{
		{ID: "virtual", Date: day(2025, time.June, 11), Location: event.VirtualLocation},
		{ID: "honduras", Date: day(2025, time.June, 11), Location: "Roatán", Country: "Honduras"},
		{ID: "thailand", Date: day(2025, time.June, 11), Location: "Chiang Mai", Country: "Thailand"},
	}
	matcher := NewAliasMatcher()

	tests := []struct {
		name      string
		locations []string
		want      []string
	}{
		{"virtual only", []string{event.VirtualLocation}, []string{"virtual"}},
		{"single country", []string{"Honduras"}, []string{"honduras"}},
		{"virtual or country", []string{event.VirtualLocation, "Thailand"}, []string{"virtual", "thailand"}},
		{"country is exact, not city", []string{"Chiang Mai"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := FilterState{Range: DateRange{Preset: RangeAll}, Locations: tt.locations}
			got := Filter(events, st, matcher, filterNow())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	events := []event.Event{
		{ID: "match", Date: day(2025, time.June, 11), NetworkState: "Zuzalu", Type: event.TypeOnline, Location: event.VirtualLocation},
		{ID: "wrong-type", Date: day(2025, time.June, 11), NetworkState: "Zuzalu", Type: event.TypePhysical, Location: event.VirtualLocation},
		{ID: "wrong-state", Date: day(2025, time.June, 11), NetworkState: "Edge City", Type: event.TypeOnline, Location: event.VirtualLocation},
	}
	matcher := NewAliasMatcher()

	st := FilterState{
		Range:         DateRange{Preset: RangeAll},
		NetworkStates: []string{"Zuzalu"},
		Types:         []event.Type{event.TypeOnline},
		Locations:     []string{event.VirtualLocation},
	}
	got := Filter(events, st, matcher, filterNow())
	assert.Equal(t, []string{"match"}, ids(got))
}

func ids(events []event.Event) []string {
	var out []string
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}
