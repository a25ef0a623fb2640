package schedule

import (
	"time"

	"nscal/internal/event"
)

// RangePreset names a date-range filter selection
type RangePreset int

const (
	RangeAll RangePreset = iota
	RangeToday
	RangeTomorrow
	RangeWeek     // today through +7 days
	RangeMonth    // today through +1 month
	RangeUpcoming // today onward, unbounded
	RangeCustom
)

func (p RangePreset) String() string {
	switch p {
	case RangeToday:
		return "today"
	case RangeTomorrow:
		return "tomorrow"
	case RangeWeek:
		return "week"
	case RangeMonth:
		return "month"
	case RangeUpcoming:
		return "upcoming"
	case RangeCustom:
		return "custom"
	default:
		return "all"
	}
}

// DateRange is the date predicate of a FilterState. Start and End are
// only consulted for RangeCustom; End is an inclusive calendar day.
type DateRange struct {
	Preset RangePreset
	Start  time.Time
	End    time.Time
}

// FilterState holds the filter and sort selections for one view. It is
// ephemeral UI state; empty selections impose no constraint.
type FilterState struct {
	Range         DateRange
	NetworkStates []string
	Types         []event.Type
	Locations     []string // country names, or the Virtual sentinel
	SortField     SortField
	Descending    bool
	CustomOrder   []string // network-state priority order for tie-breaks
}

// Filter applies the date-range, network-state, type, and location
// predicates to the candidate set. Predicates are ANDed; selections
// within one predicate are ORed. Output order matches input order.
func Filter(events []event.Event, st FilterState, matcher NameMatcher, now time.Time) []event.Event {
	start, end, bounded := resolveRange(st.Range, now)

	var out []event.Event
	for _, ev := range events {
		if bounded && !overlapsRange(ev, start, end) {
			continue
		}
		if len(st.NetworkStates) > 0 && !matchesState(ev, st.NetworkStates, matcher) {
			continue
		}
		if len(st.Types) > 0 && !matchesType(ev, st.Types) {
			continue
		}
		if len(st.Locations) > 0 && !matchesLocation(ev, st.Locations) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// resolveRange turns a preset into a concrete [start, end) window in
// now's timezone. RangeUpcoming gets a far-future end rather than a
// special case; RangeAll reports unbounded.
func resolveRange(r DateRange, now time.Time) (start, end time.Time, bounded bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch r.Preset {
	case RangeToday:
		return midnight, midnight.AddDate(0, 0, 1), true
	case RangeTomorrow:
		return midnight.AddDate(0, 0, 1), midnight.AddDate(0, 0, 2), true
	case RangeWeek:
		return midnight, midnight.AddDate(0, 0, 7), true
	case RangeMonth:
		return midnight, midnight.AddDate(0, 1, 0), true
	case RangeUpcoming:
		return midnight, midnight.AddDate(100, 0, 0), true
	case RangeCustom:
		return r.Start, r.End.AddDate(0, 0, 1), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// overlapsRange includes an event when its [start, end] window overlaps
// the filter window, not merely when its start falls inside it. Multi-day
// events that began before the window are therefore kept. Events without
// absolute instants fall back to their calendar day.
func overlapsRange(ev event.Event, start, end time.Time) bool {
	evStart, evEnd := eventWindow(ev)
	return evStart.Before(end) && !evEnd.Before(start)
}

func eventWindow(ev event.Event) (time.Time, time.Time) {
	if ev.StartAt != nil && ev.EndAt != nil {
		return *ev.StartAt, *ev.EndAt
	}
	// End just shy of the next midnight: the comparison above is
	// inclusive on the event end, and a dateless event must not leak
	// into the next day's window
	return ev.Date, ev.Date.Add(24*time.Hour - time.Second)
}

// matchesState checks the fuzzy network-state predicate. The Commons
// pseudo-state additionally matches any event tagged "commons" regardless
// of its literal state field.
func matchesState(ev event.Event, states []string, matcher NameMatcher) bool {
	for _, want := range states {
		if want == CommonsState && ev.HasTag(commonsTag) {
			return true
		}
		if matcher.NamesMatch(ev.NetworkState, want) {
			return true
		}
	}
	return false
}

func matchesType(ev event.Event, types []event.Type) bool {
	for _, t := range types {
		if ev.Type == t {
			return true
		}
	}
	return false
}

// matchesLocation checks the location predicate: the Virtual sentinel
// matches online events by their location field, everything else is a
// country exact match.
func matchesLocation(ev event.Event, locations []string) bool {
	for _, loc := range locations {
		if loc == event.VirtualLocation {
			if ev.Location == event.VirtualLocation {
				return true
			}
			continue
		}
		if ev.Country == loc {
			return true
		}
	}
	return false
}
