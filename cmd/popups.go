package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var popupScope string

var popupsCmd = &cobra.Command{
	Use:   "popups",
	Short: "List pop-up cities and residencies",
	RunE:  runPopups,
}

func init() {
	rootCmd.AddCommand(popupsCmd)
	popupsCmd.Flags().StringVar(&popupScope, "scope", "", "Only pop-ups for this network state or location")
}

func runPopups(cmd *cobra.Command, args []string) error {
	matcher := newMatcher()
	source := newSource(matcher)
	defer source.Close()

	popups, err := source.FetchPopupEvents(context.Background(), popupScope)
	if err != nil {
		return err
	}

	if len(popups) == 0 {
		fmt.Println("No pop-up events found.")
		return nil
	}

	for _, p := range popups {
		fmt.Printf("  %s – %s  %s", p.Date.Format("Jan 02 2006"), p.EndDate.Format("Jan 02 2006"), p.Title)
		if p.Location != "" {
			fmt.Printf("  %s", p.Location)
		}
		if p.NetworkState != "" {
			fmt.Printf("  [%s]", p.NetworkState)
		}
		fmt.Println()
	}

	return nil
}
