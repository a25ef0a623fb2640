package cmd

import (
	"context"
	"fmt"
	"time"

	"nscal/internal/event"
	"nscal/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	listFilter filterFlags
	listAll    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events matching the given filters",
	Long: `List prints matching events grouped into Today, Tomorrow, This Week,
and Later buckets. By default only events that have not yet ended are
shown; use --all to include history.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	addFilterFlags(listCmd, &listFilter)
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include events that have already ended")
}

func runList(cmd *cobra.Command, args []string) error {
	matcher := newMatcher()
	source := newSource(matcher)
	defer source.Close()

	ctx := context.Background()
	now := time.Now().In(cfg.Location())

	var (
		events []event.Event
		err    error
	)
	if listAll {
		events, err = source.FetchAllEvents(ctx)
	} else {
		events, err = source.FetchEvents(ctx)
	}
	if err != nil {
		return err
	}

	st, err := listFilter.toState(now)
	if err != nil {
		return err
	}

	filtered := schedule.Filter(events, st, matcher, now)
	sorted := schedule.Sort(filtered, st.SortField, st.Descending, st.CustomOrder)
	statuses := schedule.Classify(sorted, now)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	groups := schedule.GroupByBucket(sorted, today)

	if len(groups) == 0 {
		fmt.Println("No events match the current filters.")
		return nil
	}

	for _, group := range groups {
		fmt.Printf("%s\n", group.Bucket)
		for _, ev := range group.Events {
			printListRow(ev, statuses[ev.ID])
		}
		fmt.Println()
	}

	return nil
}

func printListRow(ev event.Event, status schedule.Status) {
	badge := "    "
	switch status {
	case schedule.StatusLive:
		badge = "LIVE"
	case schedule.StatusNext:
		badge = "NEXT"
	}

	timeText := ev.TimeText
	if timeText == "" {
		timeText = "all day"
	}

	where := ev.Location
	if ev.Country != "" && ev.Location != event.VirtualLocation {
		where = fmt.Sprintf("%s, %s", ev.Location, ev.Country)
	}

	fmt.Printf("  %s %s  %-19s  %s", badge, ev.Date.Format("Mon Jan 02"), timeText, ev.Title)
	if ev.NetworkState != "" {
		fmt.Printf("  [%s]", ev.NetworkState)
	}
	if where != "" {
		fmt.Printf("  %s", where)
	}
	fmt.Println()
}
