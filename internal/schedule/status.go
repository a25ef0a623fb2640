package schedule

import (
	"time"

	"nscal/internal/event"
)

// Status classifies an event against the wall clock
type Status int

const (
	StatusNone Status = iota
	StatusLive
	StatusNext
)

// IsLive reports whether now falls inside the event's absolute window.
// Events missing either instant are never live; the display string is not
// consulted.
func IsLive(ev event.Event, now time.Time) bool {
	if ev.StartAt == nil || ev.EndAt == nil {
		return false
	}
	return !now.Before(*ev.StartAt) && !now.After(*ev.EndAt)
}

// NextUpcoming returns the index of the single next-upcoming event in the
// scoped candidate set, or -1. While any event in scope is live, no event
// is next. Ties on the start instant go to the earlier input position.
func NextUpcoming(events []event.Event, now time.Time) int {
	best := -1
	for i, ev := range events {
		if IsLive(ev, now) {
			return -1
		}
		if ev.StartAt == nil || !ev.StartAt.After(now) {
			continue
		}
		if best == -1 || ev.StartAt.Before(*events[best].StartAt) {
			best = i
		}
	}
	return best
}

// Classify evaluates every event in the scoped set against now. At most
// one event is StatusNext, and none while any event is live. Callers
// re-invoke on a coarse clock tick, not per render.
func Classify(events []event.Event, now time.Time) map[string]Status {
	statuses := make(map[string]Status, len(events))

	anyLive := false
	for _, ev := range events {
		if IsLive(ev, now) {
			statuses[ev.ID] = StatusLive
			anyLive = true
		}
	}

	if !anyLive {
		if i := NextUpcoming(events, now); i >= 0 {
			statuses[events[i].ID] = StatusNext
		}
	}

	return statuses
}
