package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nscal/internal/event"
	"nscal/internal/schedule"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print live/next status transitions as they happen",
	Long: `Watch re-evaluates event statuses once a minute and prints a line
whenever an event goes live, stops being live, or becomes the next
upcoming event. Feed files are re-read when they change on disk.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	matcher := newMatcher()
	source := newSource(matcher)
	defer source.Close()

	ctx := context.Background()

	events, err := source.FetchEvents(ctx)
	if err != nil {
		return err
	}

	changes, err := source.Watch()
	if err != nil {
		return err
	}

	previous := schedule.Classify(events, time.Now().In(cfg.Location()))
	reportStatuses(events, previous, nil)

	reload := make(chan struct{}, 1)
	go func() {
		for range changes {
			select {
			case reload <- struct{}{}:
			default:
			}
		}
	}()

	evaluate := func() {
		select {
		case <-reload:
			fresh, err := source.FetchEvents(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			} else {
				events = fresh
			}
		default:
		}

		current := schedule.Classify(events, time.Now().In(cfg.Location()))
		reportStatuses(events, current, previous)
		previous = current
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", evaluate); err != nil {
		return fmt.Errorf("failed to schedule status checks: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	return nil
}

// reportStatuses prints one line per event whose status differs from the
// previous evaluation. A nil previous map reports every non-idle status.
func reportStatuses(events []event.Event, current, previous map[string]schedule.Status) {
	stamp := time.Now().Format("15:04")
	for _, ev := range events {
		status := current[ev.ID]
		if previous != nil && previous[ev.ID] == status {
			continue
		}
		switch status {
		case schedule.StatusLive:
			fmt.Printf("%s LIVE  %s\n", stamp, ev.Title)
		case schedule.StatusNext:
			fmt.Printf("%s NEXT  %s (%s %s)\n", stamp, ev.Title, ev.Date.Format("Jan 02"), ev.TimeText)
		case schedule.StatusNone:
			if previous != nil && previous[ev.ID] == schedule.StatusLive {
				fmt.Printf("%s ENDED %s\n", stamp, ev.Title)
			}
		}
	}
}
