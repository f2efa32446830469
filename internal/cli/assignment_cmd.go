package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newAssignmentCmd(app *App, af *assignmentFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Show, export and update an assignment",
	}

	cmd.AddCommand(
		newAssignmentShowCmd(app, af),
		newAssignmentExportCmd(app, af),
		newAssignmentUpdateCmd(app, af),
	)

	return cmd
}

func newAssignmentShowCmd(app *App, af *assignmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the assignment and its loaded collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			a, err := app.Store.Assignments.Get(aID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssignment(a,
				len(app.Store.Categories.Collection(aID)),
				len(app.Store.Templates.Collection(aID)),
				len(app.Store.PresetNodes.Collection(aID)),
				len(app.Store.Rubrics.Collection(aID)),
				app.now()))
			return nil
		},
	}
}

// assignmentExport is the document written by "assignment export".
type assignmentExport struct {
	Assignment  domain.Assignment   `json:"assignment" yaml:"assignment"`
	Categories  []domain.Category   `json:"categories" yaml:"categories"`
	Templates   []domain.Template   `json:"templates" yaml:"templates"`
	PresetNodes []domain.PresetNode `json:"preset_nodes" yaml:"preset_nodes"`
	Rubrics     []domain.Rubric     `json:"rubrics" yaml:"rubrics"`
}

func newAssignmentExportCmd(app *App, af *assignmentFlags) *cobra.Command {
	format := newEnumFlag("json", "json", "yaml")

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the assignment with all its collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			aID, err := openAssignment(cmd, app, af)
			if err != nil {
				return err
			}
			a, err := app.Store.Assignments.Get(aID)
			if err != nil {
				return err
			}
			doc := assignmentExport{
				Assignment:  a,
				Categories:  app.Store.Categories.Collection(aID),
				Templates:   app.Store.Templates.Collection(aID),
				PresetNodes: app.Store.PresetNodes.Collection(aID),
				Rubrics:     app.Store.Rubrics.Collection(aID),
			}

			var out []byte
			switch format.String() {
			case "yaml":
				out, err = yaml.Marshal(doc)
			default:
				out, err = json.MarshalIndent(doc, "", "  ")
				out = append(out, '\n')
			}
			if err != nil {
				return fmt.Errorf("encoding export: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().Var(format, "format", "Output format")
	return cmd
}

func newAssignmentUpdateCmd(app *App, af *assignmentFlags) *cobra.Command {
	var (
		name, description string
		published, review bool
		points            float64
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the assignment details",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openAssignment(cmd, app, af); err != nil {
				return err
			}
			flags := cmd.Flags()
			if _, err := app.Editor.Details.Select(); err != nil {
				return err
			}
			_, err := app.Editor.Details.Edit(func(a *domain.Assignment) {
				if flags.Changed("name") {
					a.Name = name
				}
				if flags.Changed("description") {
					a.Description = domain.StrPtr(description)
				}
				if flags.Changed("published") {
					a.IsPublished = published
				}
				if flags.Changed("points") {
					p := points
					a.PointsPossible = &p
				}
			})
			if err != nil {
				return err
			}
			saved, err := finishEdit(cmd, app, review)
			if err != nil || !saved {
				return err
			}
			a, err := app.Store.Assignments.Get(af.id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated assignment %s\n", a.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Assignment name")
	cmd.Flags().StringVar(&description, "description", "", "Assignment description")
	cmd.Flags().BoolVar(&published, "published", false, "Whether the assignment is published")
	cmd.Flags().Float64Var(&points, "points", 0, "Points possible")
	cmd.Flags().BoolVar(&review, "review", false, "Show the changes and ask before saving")
	return cmd
}
