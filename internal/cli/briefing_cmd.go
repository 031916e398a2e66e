package cli

import (
	"fmt"

	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/export"
	"github.com/spf13/cobra"
)

func newBriefingCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "briefing",
		Short: "Draft the weekly site briefing",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			text, err := advisor.WeeklyBriefing(env.sess.Site(), env.sess.Snapshot(), env.sess.Portfolio())
			if err != nil {
				return err
			}
			env.sess.SetBriefing(text)

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			if err := export.ToText(text, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Briefing written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the briefing to a file instead of stdout")
	return cmd
}
