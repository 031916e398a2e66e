// Package cli wires the cockpit commands: the interactive dashboard and the
// headless simulate/report/export/briefing/seed commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/sadopc/cockpit/internal/session"
	"github.com/sadopc/cockpit/internal/store"
	"github.com/sadopc/cockpit/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the process-level configuration shared by all commands.
type App struct {
	DBPath  string
	LogFile string
	Site    string
	Seed    uint64

	// Now is the clock used for generated data. Defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// RunTUI runs the dashboard program. Defaults to a full-screen bubbletea
	// program.
	RunTUI func(m tea.Model) error
}

// NewRootCmd creates the top-level "cockpit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cockpit",
		Short:         "West Coast lab operations executive dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			if app.IsInteractive != nil && app.IsInteractive() {
				return app.runTUI(tui.NewApp(env.sess, env.store, env.cfg.ExportDir))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatReport(env.sess))
			return nil
		},
	}

	bindConfigFlags(root.PersistentFlags(), app)

	root.AddCommand(
		newSimulateCmd(app),
		newReportCmd(app),
		newExportCmd(app),
		newBriefingCmd(app),
		newSeedCmd(app),
	)

	return root
}

// bindConfigFlags registers the flags every command shares.
func bindConfigFlags(flags *pflag.FlagSet, app *App) {
	flags.StringVar(&app.DBPath, "db", app.DBPath, "SQLite database path (env COCKPIT_DB)")
	flags.StringVar(&app.LogFile, "log-file", app.LogFile, "Write structured logs to this file (env COCKPIT_LOG)")
	flags.StringVar(&app.Site, "site", app.Site, `Site view: "West Coast (Overall)", "San Diego" or "Seattle"`)
	flags.Uint64Var(&app.Seed, "seed", app.Seed, "Data generation seed")
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func (app *App) runTUI(m tea.Model) error {
	if app.RunTUI != nil {
		return app.RunTUI(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// env is everything a command needs once the store is open.
type env struct {
	store  *store.Store
	cfg    store.Config
	logger *slog.Logger
	sess   *session.Session
	closer io.Closer
}

func (e *env) Close() {
	e.store.Close()
	if e.closer != nil {
		e.closer.Close()
	}
}

// open resolves configuration, opens the store, seeds it on first use and
// starts a session. Flags override environment variables, which override
// stored settings.
func (app *App) open(cmd *cobra.Command) (*env, error) {
	flags := cmd.Flags()

	logPath := app.LogFile
	if !flags.Changed("log-file") && logPath == "" {
		logPath = os.Getenv("COCKPIT_LOG")
	}
	logger, closer, err := newLogger(logPath)
	if err != nil {
		return nil, err
	}

	dbPath := app.DBPath
	if !flags.Changed("db") && dbPath == "" {
		dbPath = os.Getenv("COCKPIT_DB")
	}
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			closeQuietly(closer)
			return nil, err
		}
	}

	st, err := store.New(dbPath)
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("opening database: %w", err)
	}
	e := &env{store: st, logger: logger, closer: closer}

	if e.cfg, err = st.Config(); err != nil {
		e.Close()
		return nil, err
	}
	if flags.Changed("seed") {
		e.cfg.Seed = app.Seed
	}
	if flags.Changed("site") {
		e.cfg.Site = app.Site
	}
	site, err := portfolio.ParseSite(e.cfg.Site)
	if err != nil {
		e.Close()
		return nil, err
	}

	now := app.now()
	n, err := st.CountPortfolio()
	if err != nil {
		e.Close()
		return nil, err
	}
	if n == 0 {
		tasks := dataset.Portfolio(e.cfg.Seed, now)
		if err := st.ReplacePortfolio(tasks); err != nil {
			e.Close()
			return nil, fmt.Errorf("seed portfolio: %w", err)
		}
		logger.Info("portfolio_seeded", "db", dbPath, "seed", e.cfg.Seed, "tasks", len(tasks))
	}

	stored, err := st.ListPortfolio()
	if err != nil {
		e.Close()
		return nil, err
	}
	snap := dataset.Generate(e.cfg.Seed, now)
	snap.UsePortfolio(stored)

	if e.sess, err = session.New(snap, site, logger); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// newLogger returns a text logger writing to path, or a discarding logger
// when path is empty. The TUI owns the terminal, so logs never go to stderr.
func newLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, f, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		c.Close()
	}
}
