package cli

import (
	"fmt"
	"strconv"

	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/store"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Regenerate the stored baseline portfolio",
		Long:  "Regenerate the stored baseline portfolio from --seed (or the stored seed) and remember the seed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			seed := env.cfg.Seed
			tasks := dataset.Portfolio(seed, app.now())
			if err := env.store.ReplacePortfolio(tasks); err != nil {
				return fmt.Errorf("seed portfolio: %w", err)
			}
			if err := env.store.SetSetting(store.KeySeed, strconv.FormatUint(seed, 10)); err != nil {
				return err
			}
			env.logger.Info("portfolio_seeded", "seed", seed, "tasks", len(tasks))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tasks (seed %d)\n", len(tasks), seed)
			return nil
		},
	}
}
