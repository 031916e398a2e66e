package cli

import (
	"fmt"

	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/spf13/cobra"
)

func newSimulateCmd(app *App) *cobra.Command {
	var task string
	var delay int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Delay one project and report budget impact and cascades",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			// Out-of-range delays go straight to the simulator so they are
			// reported rather than clamped.
			res := portfolio.Simulate(env.sess.WorkingCopy(), task, delay)
			if res.Changed() {
				env.logger.Info("simulation", "task", res.Task, "delay_weeks", res.DelayWeeks,
					"cost_impact_k", res.CostImpact, "cascade", res.CascadeTarget)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatSimulation(env.sess.Site(), res))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Project name to delay")
	cmd.Flags().IntVar(&delay, "delay", 0, fmt.Sprintf("Delay in weeks (0-%d)", portfolio.MaxDelayWeeks))
	cmd.MarkFlagRequired("task")

	return cmd
}
