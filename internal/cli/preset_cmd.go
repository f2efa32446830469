package cli

import (
	"fmt"

	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/editor"
	"github.com/spf13/cobra"
)

func newPresetCmd(app *App, af *assignmentFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage the preset deadlines and progress goals of an assignment",
	}

	cmd.AddCommand(
		newPresetListCmd(app, af),
		newPresetCreateCmd(app, af),
		newPresetUpdateCmd(app, af),
		newPresetDeleteCmd(app, af),
	)

	return cmd
}

func newPresetListCmd(app *App, af *assignmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List preset nodes in due date order",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			nodes := app.Store.PresetNodes.Collection(aID)
			if len(nodes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No preset nodes found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPresetList(nodes, app.now()))
			return nil
		},
	}
}

type presetFlags struct {
	kind                       *enumFlag
	due, unlock, lock, summary string
	template                   int
	target                     float64
	review                     bool
}

func newPresetFlags() *presetFlags {
	return &presetFlags{kind: newEnumFlag("deadline", "deadline", "progress")}
}

func (f *presetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&f.unlock, "unlock", "", "Unlock date")
	cmd.Flags().StringVar(&f.lock, "lock", "", "Lock date")
	cmd.Flags().StringVar(&f.summary, "description", "", "Description")
	cmd.Flags().IntVar(&f.template, "template", 0, "Template ID of a deadline")
	cmd.Flags().Float64Var(&f.target, "target", 0, "Points target of a progress goal")
	cmd.Flags().BoolVar(&f.review, "review", false, "Show the changes and ask before saving")
}

func (f *presetFlags) apply(cmd *cobra.Command, n *domain.PresetNode, tmpl *domain.Template) {
	flags := cmd.Flags()
	if flags.Changed("type") {
		n.Type = domain.PresetDeadline
		if f.kind.String() == "progress" {
			n.Type = domain.PresetProgress
		}
	}
	if flags.Changed("due") {
		n.DueDate = f.due
	}
	if flags.Changed("unlock") {
		n.UnlockDate = domain.StrPtr(f.unlock)
	}
	if flags.Changed("lock") {
		n.LockDate = domain.StrPtr(f.lock)
	}
	if flags.Changed("description") {
		n.Description = domain.StrPtr(f.summary)
	}
	if flags.Changed("target") {
		t := f.target
		n.Target = &t
	}
	if tmpl != nil {
		n.Template = tmpl
	}
	if n.Type == domain.PresetProgress {
		n.Template = nil
	}
}

func (f *presetFlags) resolveTemplate(app *App, aID int) (*domain.Template, error) {
	if f.template == 0 {
		return nil, nil
	}
	t, ok := app.Store.Templates.Find(aID, f.template)
	if !ok {
		return nil, fmt.Errorf("template %d: %w", f.template, editor.ErrUnknownEntity)
	}
	return &t, nil
}

func newPresetCreateCmd(app *App, af *assignmentFlags) *cobra.Command {
	f := newPresetFlags()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a preset node",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			tmpl, err := f.resolveTemplate(app, aID)
			if err != nil {
				return err
			}

			app.Editor.PresetNodes.CreateNew()
			if _, err := app.Editor.PresetNodes.Edit(domain.NewID, func(n *domain.PresetNode) {
				f.apply(cmd, n, tmpl)
			}); err != nil {
				return err
			}
			saved, err := finishEdit(cmd, app, f.review)
			if err != nil || !saved {
				return err
			}
			if created, ok := app.Store.PresetNodes.Find(aID, app.Editor.Selection().ID); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d)\n", created.DisplayName(), created.ID)
			}
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().Var(f.kind, "type", "Node type")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func newPresetUpdateCmd(app *App, af *assignmentFlags) *cobra.Command {
	f := newPresetFlags()

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a preset node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("preset node", args[0])
			if err != nil {
				return err
			}
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			tmpl, err := f.resolveTemplate(app, aID)
			if err != nil {
				return err
			}

			if _, err := app.Editor.PresetNodes.Select(id); err != nil {
				return err
			}
			if _, err := app.Editor.PresetNodes.Edit(id, func(n *domain.PresetNode) {
				f.apply(cmd, n, tmpl)
			}); err != nil {
				return err
			}
			saved, err := finishEdit(cmd, app, f.review)
			if err != nil || !saved {
				return err
			}
			if updated, ok := app.Store.PresetNodes.Find(aID, id); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.DisplayName())
			}
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newPresetDeleteCmd(app *App, af *assignmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a preset node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("preset node", args[0])
			if err != nil {
				return err
			}
			if _, err := openAssignment(cmd, app, af); err != nil {
				return err
			}
			desc, err := app.Editor.PresetNodes.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.CoalesceStr(desc, fmt.Sprintf("Deleted preset node %d", id)))
			return nil
		},
	}
}
