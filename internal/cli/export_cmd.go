package cli

import (
	"fmt"

	"github.com/sadopc/cockpit/internal/export"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out, task string
	var delay int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the (optionally delayed) schedule as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}

			env, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			wc := env.sess.WorkingCopy()
			name, weeks := task, delay
			if name == "" {
				// baseline export
				name, weeks = firstName(wc), 0
			}
			res := portfolio.Simulate(wc, name, weeks)

			if out == "" {
				out = export.Path(env.cfg.ExportDir, "cockpit-schedule", format, app.now())
			}
			if format == "csv" {
				err = export.ToCSV(res, out)
			} else {
				err = export.ToJSON(res, out)
			}
			if err != nil {
				env.logger.Error("export_failed", "path", out, "error", err)
				return err
			}
			env.logger.Info("exported", "path", out, "format", format, "tasks", len(res.Schedule))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(res.Schedule), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or json")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: export dir or home, dated)")
	cmd.Flags().StringVar(&task, "task", "", "Project to delay before exporting")
	cmd.Flags().IntVar(&delay, "delay", 0, "Delay in weeks for --task")

	return cmd
}

func firstName(ts portfolio.Tasks) string {
	if len(ts) == 0 {
		return ""
	}
	return ts[0].Name
}
