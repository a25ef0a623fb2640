package cmd

import (
	"fmt"
	"os"

	"nscal/internal/config"
	"nscal/internal/event"
	"nscal/internal/schedule"
	"nscal/internal/ui"

	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	feedFiles []string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nscal",
	Short: "A terminal timeline browser for network state events",
	Long: `nscal renders network state events and pop-up cities on hourly and
weekly timelines, with filtering, sorting, and live status tracking.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&feedFiles, "feed", "f", []string{}, "Event feed file(s) to use (can be specified multiple times)")
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
}

// newMatcher builds the alias matcher, extended with any alias
// directives from the config file
func newMatcher() *schedule.AliasMatcher {
	matcher := schedule.NewAliasMatcher()
	for name, variants := range cfg.Aliases {
		matcher.AddAlias(name, variants...)
	}
	return matcher
}

// newSource builds the feed source from config or command-line files
func newSource(matcher *schedule.AliasMatcher) *event.FileSource {
	files := cfg.FeedFiles
	if len(feedFiles) > 0 {
		files = feedFiles
		// Keep the config in sync so views report the right files
		cfg.FeedFiles = feedFiles
	}

	source := event.NewFileSource(files...)
	source.Timezone = cfg.Location()
	source.Match = matcher.NamesMatch
	return source
}

func runTUI(cmd *cobra.Command, args []string) error {
	matcher := newMatcher()
	source := newSource(matcher)
	defer source.Close()

	model := ui.NewModel(cfg, source, matcher)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
