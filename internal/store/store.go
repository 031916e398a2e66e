package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 2

// Store keeps the baseline portfolio and the dashboard settings in SQLite.
// Simulation state never reaches it.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS portfolio_tasks (
		position     INTEGER PRIMARY KEY,
		name         TEXT NOT NULL,
		site         TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		finish_date  TEXT NOT NULL,
		weekly_cost  REAL NOT NULL DEFAULT 0 CHECK (weekly_cost >= 0),
		dependency   TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'Not Started',
		CHECK (finish_date >= start_date)
	);

	CREATE INDEX IF NOT EXISTS idx_portfolio_site ON portfolio_tasks(site);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('site',            'West Coast (Overall)'),
		('seed',            '42'),
		('export_dir',      '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// migrateV2 drops the max_delay_weeks row written by v1; the delay bound
// is portfolio.MaxDelayWeeks.
func (s *Store) migrateV2() error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = 'max_delay_weeks'`)
	return err
}

// DefaultDBPath returns ~/.config/dte-cockpit/cockpit.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dte-cockpit", "cockpit.db"), nil
}
