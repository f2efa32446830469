package cli

import (
	"fmt"

	"github.com/alexanderramin/ejournal/internal/api"
	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App, af *assignmentFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the categories of an assignment",
	}

	cmd.AddCommand(
		newCategoryListCmd(app, af),
		newCategoryCreateCmd(app, af),
		newCategoryUpdateCmd(app, af),
		newCategoryDeleteCmd(app, af),
		newCategoryEntryCmd(app, af),
	)

	return cmd
}

func newCategoryListCmd(app *App, af *assignmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			categories := app.Store.Categories.Collection(aID)
			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategoryList(categories, dirtyIDs(app.Editor.Categories, categories)))
			return nil
		},
	}
}

type categoryFlags struct {
	name, color, description string
	link, unlink             []int
	review                   bool
}

func (f *categoryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Category name")
	cmd.Flags().StringVar(&f.color, "color", "", "Category color, e.g. #ff0000")
	cmd.Flags().StringVar(&f.description, "description", "", "Category description")
	cmd.Flags().IntSliceVar(&f.link, "template", nil, "Template IDs to link")
	cmd.Flags().BoolVar(&f.review, "review", false, "Show the changes and ask before saving")
}

// apply writes the changed flags into c.
func (f *categoryFlags) apply(cmd *cobra.Command, c *domain.Category, templates []domain.TemplateSummary) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		c.Name = domain.StrPtr(f.name)
	}
	if flags.Changed("color") {
		c.Color = f.color
	}
	if flags.Changed("description") {
		c.Description = domain.StrPtr(f.description)
	}
	c.Templates = relink(c.Templates, templates, f.unlink, templateSummaryID)
}

func newCategoryCreateCmd(app *App, af *assignmentFlags) *cobra.Command {
	var f categoryFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			templates, err := templateSummaries(app, aID, f.link)
			if err != nil {
				return err
			}

			app.Editor.Categories.CreateNew()
			if _, err := app.Editor.Categories.Edit(domain.NewID, func(c *domain.Category) {
				f.apply(cmd, c, templates)
			}); err != nil {
				return err
			}
			saved, err := finishEdit(cmd, app, f.review)
			if err != nil || !saved {
				return err
			}
			sel := app.Editor.Selection()
			if created, ok := app.Store.Categories.Find(aID, sel.ID); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Created category %s (%d)\n", created.DisplayName(), created.ID)
			}
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoryUpdateCmd(app *App, af *assignmentFlags) *cobra.Command {
	var f categoryFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("category", args[0])
			if err != nil {
				return err
			}
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			templates, err := templateSummaries(app, aID, f.link)
			if err != nil {
				return err
			}

			if _, err := app.Editor.Categories.Select(id); err != nil {
				return err
			}
			if _, err := app.Editor.Categories.Edit(id, func(c *domain.Category) {
				f.apply(cmd, c, templates)
			}); err != nil {
				return err
			}
			saved, err := finishEdit(cmd, app, f.review)
			if err != nil || !saved {
				return err
			}
			if updated, ok := app.Store.Categories.Find(aID, id); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated category %s\n", updated.DisplayName())
			}
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().IntSliceVar(&f.unlink, "unlink-template", nil, "Template IDs to unlink")
	return cmd
}

func newCategoryDeleteCmd(app *App, af *assignmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("category", args[0])
			if err != nil {
				return err
			}
			if _, err := openAssignment(cmd, app, af); err != nil {
				return err
			}
			desc, err := app.Editor.Categories.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.CoalesceStr(desc, fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}
}

func newCategoryEntryCmd(app *App, af *assignmentFlags) *cobra.Command {
	var (
		entry  int
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "entry <id>",
		Short: "Add or remove a category on a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("category", args[0])
			if err != nil {
				return err
			}
			if err := app.Store.Categories.EditEntry(cmd.Context(), id, api.EditEntryRequest{EntryID: entry, Add: !remove}); err != nil {
				return err
			}
			verb := "Added"
			if remove {
				verb = "Removed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s category %d on entry %d\n", verb, id, entry)
			return nil
		},
	}

	cmd.Flags().IntVar(&entry, "entry", 0, "Entry ID")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the category instead of adding it")
	_ = cmd.MarkFlagRequired("entry")
	return cmd
}
