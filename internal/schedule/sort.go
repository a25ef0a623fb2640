package schedule

import (
	"sort"
	"strings"
	"time"

	"nscal/internal/event"
	"nscal/internal/timeparse"
)

// SortField selects the primary ordering of the agenda table
type SortField int

const (
	SortDate SortField = iota
	SortTitle
	SortLocation
	SortNetworkState
	SortType
)

func (f SortField) String() string {
	switch f {
	case SortDate:
		return "date"
	case SortTitle:
		return "event"
	case SortLocation:
		return "location"
	case SortNetworkState:
		return "network state"
	case SortType:
		return "type"
	default:
		return "unknown"
	}
}

// Sort returns a new slice ordered by the chosen field. Descending flips
// the whole composite comparator, not just the primary key. Tie-break
// chains make the order total for every field except date, which falls
// back to stable input order once all keys are exhausted.
func Sort(events []event.Event, field SortField, descending bool, customOrder []string) []event.Event {
	out := make([]event.Event, len(events))
	copy(out, events)

	compare := comparator(field, customOrder)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(field SortField, customOrder []string) func(a, b event.Event) int {
	switch field {
	case SortTitle:
		return func(a, b event.Event) int {
			return chain(
				strings.Compare(a.Title, b.Title),
				compareDay(a.Date, b.Date),
				strings.Compare(a.ID, b.ID),
			)
		}
	case SortLocation:
		return func(a, b event.Event) int {
			return chain(
				virtualRank(a)-virtualRank(b),
				strings.Compare(a.Location, b.Location),
				strings.Compare(a.Title, b.Title),
				strings.Compare(a.ID, b.ID),
			)
		}
	case SortNetworkState:
		return func(a, b event.Event) int {
			return chain(
				customRank(a.NetworkState, customOrder)-customRank(b.NetworkState, customOrder),
				strings.Compare(a.NetworkState, b.NetworkState),
				strings.Compare(a.Title, b.Title),
				strings.Compare(a.ID, b.ID),
			)
		}
	case SortType:
		return func(a, b event.Event) int {
			return chain(
				strings.Compare(string(a.Type), string(b.Type)),
				strings.Compare(a.Title, b.Title),
				strings.Compare(a.ID, b.ID),
			)
		}
	default: // SortDate
		return func(a, b event.Event) int {
			return chain(
				compareDay(a.Date, b.Date),
				startMinutes(a)-startMinutes(b),
				customRank(a.NetworkState, customOrder)-customRank(b.NetworkState, customOrder),
				strings.Compare(a.NetworkState, b.NetworkState),
				// equal here: stable sort keeps input order
			)
		}
	}
}

// chain returns the first non-zero comparison result
func chain(results ...int) int {
	for _, r := range results {
		if r != 0 {
			return r
		}
	}
	return 0
}

func compareDay(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// startMinutes orders events within a day. Absolute instants win over the
// display string, which is only a fallback for legacy records.
func startMinutes(ev event.Event) int {
	if ev.StartAt != nil {
		local := ev.StartAt.In(ev.Date.Location())
		return local.Hour()*60 + local.Minute()
	}
	return int(timeparse.Parse(ev.TimeText).StartHour * 60)
}

// customRank places network states named in the caller's priority list
// ahead of everything else, in list position order. Unlisted states share
// the rank past the end and fall through to lexicographic comparison.
func customRank(state string, order []string) int {
	for i, name := range order {
		if strings.EqualFold(state, name) {
			return i
		}
	}
	return len(order)
}

// virtualRank forces Virtual events ahead of located ones
func virtualRank(ev event.Event) int {
	if ev.Location == event.VirtualLocation {
		return 0
	}
	return 1
}
