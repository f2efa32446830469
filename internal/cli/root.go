package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/editor"
	"github.com/alexanderramin/ejournal/internal/persist"
	"github.com/alexanderramin/ejournal/internal/preferences"
	"github.com/alexanderramin/ejournal/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the state objects used by CLI commands.
type App struct {
	Store       *store.Store
	Editor      *editor.Editor
	Preferences *preferences.Preferences
	Persist     *persist.Persister
	User        *domain.User
	Log         *zap.Logger

	// Now is the clock used for relative dates.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *zap.Logger {
	if a.Log != nil {
		return a.Log
	}
	return zap.NewNop()
}

type assignmentFlags struct {
	id     int
	course int
	force  bool
}

func (f assignmentFlags) courseID() *int {
	if f.course <= 0 {
		return nil
	}
	c := f.course
	return &c
}

// NewRootCmd creates the top-level "ejournal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var af assignmentFlags

	root := &cobra.Command{
		Use:           "ejournal",
		Short:         "Edit eJournal assignment categories, templates and timelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			app.Preferences.Flush()
			if app.Persist == nil {
				return nil
			}
			if err := app.Persist.Persist(cmd.Context(), app.Store, app.Preferences, app.User); err != nil {
				return fmt.Errorf("persisting client state: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().IntVarP(&af.id, "assignment", "a", 0, "Assignment ID")
	root.PersistentFlags().IntVar(&af.course, "course", 0, "Course ID the assignment is viewed in")
	root.PersistentFlags().BoolVar(&af.force, "refresh", false, "Refetch from the server instead of using loaded data")

	root.AddCommand(
		newAssignmentCmd(app, &af),
		newCategoryCmd(app, &af),
		newTemplateCmd(app, &af),
		newPresetCmd(app, &af),
		newRubricCmd(app, &af),
		newTimelineCmd(app, &af),
		newPrefsCmd(app),
	)

	return root
}

// openAssignment loads the assignment named by the flags and points the
// editor at it.
func openAssignment(cmd *cobra.Command, app *App, af *assignmentFlags) (int, error) {
	if af.id <= 0 {
		return 0, fmt.Errorf("assignment ID is required (--assignment)")
	}
	course := af.courseID()
	if err := app.Store.LoadAssignment(cmd.Context(), af.id, course, af.force); err != nil {
		return 0, err
	}
	app.Editor.SetAssignment(af.id)
	app.Editor.Details.SetCourse(course)
	return af.id, nil
}

// finishEdit shows the pending drafts when review is set and asks whether
// to discard them. Kept drafts are saved; saved reports whether anything
// was sent.
func finishEdit(cmd *cobra.Command, app *App, review bool) (saved bool, err error) {
	ctx := cmd.Context()
	if !app.Editor.Dirty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to save.")
		return false, nil
	}
	if review {
		discard, err := app.Editor.ConfirmDiscardAll(ctx)
		if err != nil {
			return false, err
		}
		if discard {
			fmt.Fprintln(cmd.OutOrStdout(), "Changes discarded.")
			return false, nil
		}
	}
	if err := app.Editor.SaveAll(ctx); err != nil {
		return false, err
	}
	return true, nil
}
