package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/alexanderramin/ejournal/internal/preferences"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show and change list view settings and saved preferences",
	}

	cmd.AddCommand(
		newPrefsShowCmd(app),
		newPrefsSetCmd(app),
		newPrefsChangeCmd(app),
		newPrefsSwitchJournalCmd(app),
		newPrefsHidePastCmd(app),
		newPrefsResetCmd(app),
	)

	return cmd
}

func newPrefsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the view settings and saved preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatPreferences(app.Preferences.Snapshot()))
			return nil
		},
	}
}

func formatPreferences(s preferences.State) string {
	group := func(g *int) string {
		if g == nil {
			return "all"
		}
		return strconv.Itoa(*g)
	}
	rows := [][]string{
		{"todo.sort_by", s.Todo.SortBy},
		{"todo.filter_own_groups", strconv.FormatBool(s.Todo.FilterOwnGroups)},
		{"journal", s.Journal.String()},
		{"journal.group", group(s.Journal.GroupFilter)},
		{"course_members.sort_by", s.CourseMembers.SortBy},
		{"course_members.sort_ascending", strconv.FormatBool(s.CourseMembers.SortAscending)},
		{"course_members.view_enrolled", strconv.FormatBool(s.CourseMembers.ViewEnrolled)},
		{"course_members.group", group(s.CourseMembers.GroupFilter)},
		{"assignment_overview.sort_by", s.AssignmentOverview.SortBy},
		{"assignment_overview.filter_own_groups", strconv.FormatBool(s.AssignmentOverview.FilterOwnGroups)},
		{"journal_import_request_button", s.JournalImportRequestButtonSetting},
	}
	out := formatter.Header("View settings") + "\n" + formatter.RenderTable([]string{"SETTING", "VALUE"}, rows)

	if len(s.Saved) == 0 {
		return out
	}
	saved := make([][]string, 0, len(s.Saved))
	for _, k := range slices.Sorted(maps.Keys(s.Saved)) {
		saved = append(saved, []string{k, fmt.Sprint(s.Saved[k])})
	}
	return out + "\n" + formatter.Header("Saved preferences") + "\n" + formatter.RenderTable([]string{"KEY", "VALUE"}, saved)
}

func newPrefsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "set <setting> <value>",
		Short:     "Set a view setting such as journal.sort_by",
		Args:      cobra.ExactArgs(2),
		ValidArgs: preferences.FilterKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Preferences.SetFilter(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newPrefsChangeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "change <key> <value>",
		Short: "Change a saved preference on the server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Scalars are typed the way YAML reads them: true, 3, text.
			var value any
			if err := yaml.Unmarshal([]byte(args[1]), &value); err != nil {
				return fmt.Errorf("parsing value %q: %w", args[1], err)
			}
			app.Preferences.Change(cmd.Context(), map[string]any{args[0]: value})
			app.Preferences.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "Changed %s\n", args[0])
			return nil
		},
	}
}

func newPrefsSwitchJournalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "switch-journal <assignment-id>",
		Short: "Point the journal list at another assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := parseID("assignment", args[0])
			if err != nil {
				return err
			}
			app.Preferences.SwitchJournalAssignment(aID)
			fmt.Fprintln(cmd.OutOrStdout(), app.Preferences.Journal().String())
			return nil
		},
	}
}

func newPrefsHidePastCmd(app *App) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "hide-past-deadlines <assignment-id>",
		Short: "Hide past deadlines in the timeline of an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := parseID("assignment", args[0])
			if err != nil {
				return err
			}
			app.Preferences.SetHidePastDeadlines(cmd.Context(), aID, !show)
			app.Preferences.Flush()
			state := "hidden"
			if show {
				state = "shown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Past deadlines of assignment %d are %s\n", aID, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Show past deadlines again")
	return cmd
}

func newPrefsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default view settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Preferences.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Preferences reset.")
			return nil
		},
	}
}
