package cli

import (
	"fmt"

	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/spf13/cobra"
)

func newRubricCmd(app *App, af *assignmentFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "List and remove the rubrics of an assignment",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List rubrics",
			RunE: func(cmd *cobra.Command, args []string) error {
				aID, err := openAssignment(cmd, app, af)
				if err != nil {
					return err
				}
				rubrics := app.Store.Rubrics.Collection(aID)
				if len(rubrics) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No rubrics found.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRubricList(rubrics))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a rubric",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("rubric", args[0])
				if err != nil {
					return err
				}
				aID, err := openAssignment(cmd, app, af)
				if err != nil {
					return err
				}
				desc, err := app.Store.Rubrics.Delete(cmd.Context(), aID, id, true)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), domain.CoalesceStr(desc, fmt.Sprintf("Deleted rubric %d", id)))
				return nil
			},
		},
	)

	return cmd
}
