package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App, af *assignmentFlags) *cobra.Command {
	var (
		filter      []int
		clearFilter bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the assignment timeline and its category filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			if _, err := app.Editor.ConfirmDiscardAll(cmd.Context()); err != nil {
				return err
			}
			app.Editor.SelectTimeline()

			switch {
			case clearFilter:
				app.Store.Timeline.ClearFilteredCategories()
			case len(filter) > 0:
				if _, err := categorySummaries(app, aID, filter); err != nil {
					return err
				}
				app.Store.Timeline.SetFilteredCategories(filter...)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatPresetList(app.Store.PresetNodes.Collection(aID), app.now()))
			var names []string
			for _, id := range app.Store.Timeline.FilteredCategories() {
				if c, ok := app.Store.Categories.Find(aID, id); ok {
					names = append(names, c.DisplayName())
				}
			}
			if len(names) > 0 {
				fmt.Fprintf(out, "Filtered by: %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&filter, "category", nil, "Only show entries of these category IDs")
	cmd.Flags().BoolVar(&clearFilter, "clear", false, "Clear the category filter")
	return cmd
}
