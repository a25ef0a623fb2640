package cmd

import (
	"fmt"
	"time"

	"nscal/internal/event"
	"nscal/internal/schedule"
	"nscal/internal/timeparse"

	"github.com/spf13/cobra"
)

// filterFlags collects the filter/sort selections shared by the list and
// export commands
type filterFlags struct {
	rangeName string
	from      string
	to        string
	states    []string
	types     []string
	countries []string
	virtual   bool
	sortName  string
	desc      bool
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	cmd.Flags().StringVar(&f.rangeName, "range", "upcoming", "Date range preset (all, today, tomorrow, week, month, upcoming)")
	cmd.Flags().StringVar(&f.from, "from", "", "Custom range start (e.g. 'today', '2025-02-10', 'next friday')")
	cmd.Flags().StringVar(&f.to, "to", "", "Custom range end, inclusive")
	cmd.Flags().StringSliceVar(&f.states, "state", nil, "Network state(s) to include (fuzzy matched)")
	cmd.Flags().StringSliceVar(&f.types, "type", nil, "Event type(s) to include")
	cmd.Flags().StringSliceVar(&f.countries, "country", nil, "Countries to include")
	cmd.Flags().BoolVar(&f.virtual, "virtual", false, "Include virtual events in the location filter")
	cmd.Flags().StringVar(&f.sortName, "sort", "date", "Sort field (date, event, location, state, type)")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "Sort descending")
}

func (f *filterFlags) toState(now time.Time) (schedule.FilterState, error) {
	st := schedule.FilterState{
		NetworkStates: f.states,
		Locations:     f.countries,
		CustomOrder:   cfg.CustomOrder,
		Descending:    f.desc,
	}

	if f.virtual {
		st.Locations = append(st.Locations, event.VirtualLocation)
	}

	for _, t := range f.types {
		st.Types = append(st.Types, event.Type(t))
	}

	if f.from != "" || f.to != "" {
		start, err := parseDayFlag(f.from, now, now)
		if err != nil {
			return st, fmt.Errorf("--from: %w", err)
		}
		end, err := parseDayFlag(f.to, now, start.AddDate(0, 1, 0))
		if err != nil {
			return st, fmt.Errorf("--to: %w", err)
		}
		st.Range = schedule.DateRange{Preset: schedule.RangeCustom, Start: start, End: end}
	} else {
		preset, err := parsePreset(f.rangeName)
		if err != nil {
			return st, err
		}
		st.Range = schedule.DateRange{Preset: preset}
	}

	field, err := parseSortField(f.sortName)
	if err != nil {
		return st, err
	}
	st.SortField = field

	return st, nil
}

func parseDayFlag(expr string, now, fallback time.Time) (time.Time, error) {
	if expr == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, fallback.Location()), nil
	}
	return timeparse.ParseDay(expr, now)
}

func parsePreset(name string) (schedule.RangePreset, error) {
	switch name {
	case "all":
		return schedule.RangeAll, nil
	case "today":
		return schedule.RangeToday, nil
	case "tomorrow":
		return schedule.RangeTomorrow, nil
	case "week":
		return schedule.RangeWeek, nil
	case "month":
		return schedule.RangeMonth, nil
	case "upcoming":
		return schedule.RangeUpcoming, nil
	default:
		return schedule.RangeAll, fmt.Errorf("unknown range preset: %s", name)
	}
}

func parseSortField(name string) (schedule.SortField, error) {
	switch name {
	case "date":
		return schedule.SortDate, nil
	case "event", "title":
		return schedule.SortTitle, nil
	case "location":
		return schedule.SortLocation, nil
	case "state", "network-state":
		return schedule.SortNetworkState, nil
	case "type":
		return schedule.SortType, nil
	default:
		return schedule.SortDate, fmt.Errorf("unknown sort field: %s", name)
	}
}
