package cli

import (
	"fmt"

	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/editor"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App, af *assignmentFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the entry templates of an assignment",
	}

	cmd.AddCommand(
		newTemplateListCmd(app, af),
		newTemplateCreateCmd(app, af),
		newTemplateImportCmd(app, af),
		newTemplateUpdateCmd(app, af),
		newTemplateDeleteCmd(app, af),
	)

	return cmd
}

func newTemplateListCmd(app *App, af *assignmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			templates := app.Store.Templates.Collection(aID)
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(templates, dirtyIDs(app.Editor.Templates, templates)))
			return nil
		},
	}
}

type templateFlags struct {
	name                 string
	presetOnly, archived bool
	link, unlink         []int
	review               bool
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Template name")
	cmd.Flags().BoolVar(&f.presetOnly, "preset-only", false, "Only usable in preset deadlines")
	cmd.Flags().IntSliceVar(&f.link, "category", nil, "Category IDs to link")
	cmd.Flags().BoolVar(&f.review, "review", false, "Show the changes and ask before saving")
}

func (f *templateFlags) apply(cmd *cobra.Command, t *domain.Template, categories []domain.CategorySummary) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		t.Name = f.name
	}
	if flags.Changed("preset-only") {
		t.PresetOnly = f.presetOnly
	}
	if flags.Changed("archived") {
		t.Archived = f.archived
	}
	t.Categories = relink(t.Categories, categories, f.unlink, categorySummaryID)
}

func newTemplateCreateCmd(app *App, af *assignmentFlags) *cobra.Command {
	var f templateFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a template with one rich text field",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			categories, err := categorySummaries(app, aID, f.link)
			if err != nil {
				return err
			}

			app.Editor.Templates.CreateNew()
			if _, err := app.Editor.Templates.Edit(domain.NewID, func(t *domain.Template) {
				f.apply(cmd, t, categories)
			}); err != nil {
				return err
			}
			return reportCreatedTemplate(cmd, app, aID, f.review)
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func reportCreatedTemplate(cmd *cobra.Command, app *App, aID int, review bool) error {
	saved, err := finishEdit(cmd, app, review)
	if err != nil || !saved {
		return err
	}
	if created, ok := app.Store.Templates.Find(aID, app.Editor.Selection().ID); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%d)\n", created.DisplayName(), created.ID)
	}
	return nil
}

func newTemplateImportCmd(app *App, af *assignmentFlags) *cobra.Command {
	var (
		from   int
		review bool
	)

	cmd := &cobra.Command{
		Use:   "import <template-id>",
		Short: "Copy a template from another assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			source, err := app.Store.Templates.List(cmd.Context(), from, false)
			if err != nil {
				return err
			}
			var found *domain.Template
			for i := range source {
				if source[i].ID == id {
					found = &source[i]
					break
				}
			}
			if found == nil {
				return fmt.Errorf("template %d in assignment %d: %w", id, from, editor.ErrUnknownEntity)
			}

			app.Editor.SelectTemplateImport()
			seed := found.Clone()
			seed.ID = domain.NewID
			seed.Categories = []domain.CategorySummary{}
			app.Editor.Templates.CreateImported(seed)
			return reportCreatedTemplate(cmd, app, aID, review)
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Assignment ID to import from")
	cmd.Flags().BoolVar(&review, "review", false, "Show the changes and ask before saving")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newTemplateUpdateCmd(app *App, af *assignmentFlags) *cobra.Command {
	var f templateFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			categories, err := categorySummaries(app, aID, f.link)
			if err != nil {
				return err
			}

			if _, err := app.Editor.Templates.Select(id); err != nil {
				return err
			}
			if _, err := app.Editor.Templates.Edit(id, func(t *domain.Template) {
				f.apply(cmd, t, categories)
			}); err != nil {
				return err
			}
			saved, err := finishEdit(cmd, app, f.review)
			if err != nil || !saved {
				return err
			}
			if updated, ok := app.Store.Templates.Find(aID, id); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated template %s\n", updated.DisplayName())
			}
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.archived, "archived", false, "Archive the template")
	cmd.Flags().IntSliceVar(&f.unlink, "unlink-category", nil, "Category IDs to unlink")
	return cmd
}

func newTemplateDeleteCmd(app *App, af *assignmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}
			if _, err := openAssignment(cmd, app, af); err != nil {
				return err
			}
			desc, err := app.Editor.Templates.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.CoalesceStr(desc, fmt.Sprintf("Deleted template %d", id)))
			return nil
		},
	}
}
