package schedule

import (
	"testing"
	"time"

	"nscal/internal/event"

	"github.com/stretchr/testify/assert"
)

func TestSortByDate(t *testing.T) {
	events := []event.Event{
		{ID: "b", Title: "Late talk", Date: day(2025, time.June, 11), TimeText: "7:00 PM – 9:00 PM"},
		{ID: "a", Title: "Morning talk", Date: day(2025, time.June, 11), TimeText: "9:00 AM – 10:00 AM"},
		{ID: "c", Title: "Earlier day", Date: day(2025, time.June, 10), TimeText: "8:00 PM – 10:00 PM"},
	}

	got := Sort(events, SortDate, false, nil)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
}

func TestSortByDatePrefersInstantsOverText(t *testing.T) {
	events := []event.Event{
		{ID: "text", Date: day(2025, time.June, 11), TimeText: "10:00 AM – 11:00 AM"},
		{ID: "instant", Date: day(2025, time.June, 11),
			StartAt: instant(2025, time.June, 11, 8, 0),
			EndAt:   instant(2025, time.June, 11, 9, 0),
			// Stale display text must not win over the instant
			TimeText: "11:00 AM – 12:00 PM"},
	}

	got := Sort(events, SortDate, false, nil)
	assert.Equal(t, []string{"instant", "text"}, ids(got))
}

func TestSortByDateCustomOrderBreaksTies(t *testing.T) {
	events := []event.Event{
		{ID: "a", NetworkState: "Aleph", Date: day(2025, time.June, 11), TimeText: "9:00 AM – 10:00 AM"},
		{ID: "z", NetworkState: "Zuzalu", Date: day(2025, time.June, 11), TimeText: "9:00 AM – 10:00 AM"},
		{ID: "e", NetworkState: "Edge City", Date: day(2025, time.June, 11), TimeText: "9:00 AM – 10:00 AM"},
	}

	got := Sort(events, SortDate, false, []string{"Zuzalu", "Edge City"})
	assert.Equal(t, []string{"z", "e", "a"}, ids(got))
}

func TestSortByDateStableOnFullTie(t *testing.T) {
	events := []event.Event{
		{ID: "first", NetworkState: "Zuzalu", Date: day(2025, time.June, 11), TimeText: "9:00 AM – 10:00 AM"},
		{ID: "second", NetworkState: "Zuzalu", Date: day(2025, time.June, 11), TimeText: "9:00 AM – 10:00 AM"},
	}

	got := Sort(events, SortDate, false, nil)
	assert.Equal(t, []string{"first", "second"}, ids(got))
}

func TestSortByTitle(t *testing.T) {
	events := []event.Event{
		{ID: "c", Title: "Governance call"},
		{ID: "a", Title: "AI salon"},
		{ID: "b", Title: "Biotech demo day"},
	}

	got := Sort(events, SortTitle, false, nil)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))

	got = Sort(events, SortTitle, true, nil)
	assert.Equal(t, []string{"c", "b", "a"}, ids(got))
}

func TestSortByLocationVirtualFirst(t *testing.T) {
	events := []event.Event{
		{ID: "roatan", Title: "Meetup", Location: "Roatán"},
		{ID: "virtual", Title: "Call", Location: event.VirtualLocation},
		{ID: "chiangmai", Title: "Dinner", Location: "Chiang Mai"},
	}

	got := Sort(events, SortLocation, false, nil)
	assert.Equal(t, []string{"virtual", "chiangmai", "roatan"}, ids(got))
}

func TestSortByNetworkState(t *testing.T) {
	events := []event.Event{
		{ID: "a", Title: "x", NetworkState: "Aleph"},
		{ID: "z", Title: "y", NetworkState: "Zuzalu"},
		{ID: "e", Title: "z", NetworkState: "Edge City"},
	}

	// Without a custom order the sort is lexicographic
	got := Sort(events, SortNetworkState, false, nil)
	assert.Equal(t, []string{"a", "e", "z"}, ids(got))

	// A custom order promotes its members in list position order
	got = Sort(events, SortNetworkState, false, []string{"Zuzalu"})
	assert.Equal(t, []string{"z", "a", "e"}, ids(got))
}

func TestSortByType(t *testing.T) {
	events := []event.Event{
		{ID: "p", Title: "x", Type: event.TypePopup},
		{ID: "h", Title: "y", Type: event.TypeHybrid},
		{ID: "o", Title: "z", Type: event.TypeOnline},
	}

	got := Sort(events, SortType, false, nil)
	assert.Equal(t, []string{"h", "o", "p"}, ids(got))
}

// Descending flips the entire composite comparator, so tie-break order
// reverses too.
func TestSortDescendingFlipsWholeComparator(t *testing.T) {
	events := []event.Event{
		{ID: "1", Title: "Same", Date: day(2025, time.June, 10)},
		{ID: "2", Title: "Same", Date: day(2025, time.June, 12)},
		{ID: "3", Title: "Other", Date: day(2025, time.June, 11)},
	}

	asc := Sort(events, SortTitle, false, nil)
	assert.Equal(t, []string{"3", "1", "2"}, ids(asc))

	desc := Sort(events, SortTitle, true, nil)
	assert.Equal(t, []string{"2", "1", "3"}, ids(desc))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	events := []event.Event{
		{ID: "b", Title: "B"},
		{ID: "a", Title: "A"},
	}

	Sort(events, SortTitle, false, nil)
	assert.Equal(t, []string{"b", "a"}, ids(events))
}
