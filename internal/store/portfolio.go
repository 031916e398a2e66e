package store

import (
	"fmt"
	"time"

	"github.com/sadopc/cockpit/internal/portfolio"
)

// ReplacePortfolio swaps the stored baseline for tasks, keeping their order.
func (s *Store) ReplacePortfolio(tasks portfolio.Tasks) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM portfolio_tasks`); err != nil {
		return fmt.Errorf("clear portfolio: %w", err)
	}
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		_, err := tx.Exec(
			`INSERT INTO portfolio_tasks (position, name, site, start_date, finish_date, weekly_cost, dependency, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, t.Name, string(t.Site), t.Start.UTC().Format(time.RFC3339), t.Finish.UTC().Format(time.RFC3339),
			t.WeeklyCost, t.Dependency, string(t.Status),
		)
		if err != nil {
			return fmt.Errorf("insert task %q: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// ListPortfolio returns the stored baseline in its original order.
func (s *Store) ListPortfolio() (portfolio.Tasks, error) {
	rows, err := s.db.Query(
		`SELECT name, site, start_date, finish_date, weekly_cost, dependency, status
		 FROM portfolio_tasks ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	defer rows.Close()

	tasks := portfolio.Tasks{}
	for rows.Next() {
		var t portfolio.Task
		var site, status, start, finish string
		if err := rows.Scan(&t.Name, &site, &start, &finish, &t.WeeklyCost, &t.Dependency, &status); err != nil {
			return nil, err
		}
		t.Site = portfolio.Site(site)
		t.Status = portfolio.Status(status)
		if t.Start, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("task %q start: %w", t.Name, err)
		}
		if t.Finish, err = time.Parse(time.RFC3339, finish); err != nil {
			return nil, fmt.Errorf("task %q finish: %w", t.Name, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) CountPortfolio() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM portfolio_tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count portfolio: %w", err)
	}
	return n, nil
}
