package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"nscal/internal/ics"
	"nscal/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	exportFilter filterFlags
	exportOut    string
	exportPopups bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export matching events as an iCalendar file",
	Long: `Export writes matching events (and optionally pop-up cities as all-day
spans) as an iCalendar stream to stdout or to a file.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addFilterFlags(exportCmd, &exportFilter)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().BoolVar(&exportPopups, "popups", true, "Include pop-up cities as all-day events")
}

func runExport(cmd *cobra.Command, args []string) error {
	matcher := newMatcher()
	source := newSource(matcher)
	defer source.Close()

	ctx := context.Background()
	now := time.Now().In(cfg.Location())

	events, err := source.FetchEvents(ctx)
	if err != nil {
		return err
	}

	st, err := exportFilter.toState(now)
	if err != nil {
		return err
	}
	filtered := schedule.Filter(events, st, matcher, now)
	sorted := schedule.Sort(filtered, st.SortField, st.Descending, st.CustomOrder)

	var calendar string
	if exportPopups {
		pops, err := source.FetchPopupEvents(ctx, "")
		if err != nil {
			return err
		}
		calendar = ics.Export(sorted, pops, cfg.Location())
	} else {
		calendar = ics.Export(sorted, nil, cfg.Location())
	}

	if exportOut == "" {
		fmt.Print(calendar)
		return nil
	}

	if err := os.WriteFile(exportOut, []byte(calendar), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	fmt.Printf("Wrote %d events to %s\n", len(sorted), exportOut)
	return nil
}
