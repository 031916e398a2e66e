package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the executive summary for the selected site",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			fmt.Fprint(cmd.OutOrStdout(), formatReport(env.sess))
			return nil
		},
	}
}
