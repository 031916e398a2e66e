package portfolio

import "fmt"

// Store owns the baseline timeline. It hands out copies only.
type Store struct {
	baseline Tasks
}

// NewStore validates every row and keeps a private copy of tasks.
func NewStore(tasks []Task) (*Store, error) {
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return &Store{baseline: Tasks(tasks).Clone()}, nil
}

// Load returns the tasks for site, or every task for SiteAll.
func (s *Store) Load(site Site) Tasks {
	if site == SiteAll || site == "" {
		return s.baseline.Clone()
	}
	out := Tasks{}
	for _, t := range s.baseline {
		if t.Site == site {
			out = append(out, t)
		}
	}
	return out
}

// Baseline returns a copy of the full collection.
func (s *Store) Baseline() Tasks {
	return s.baseline.Clone()
}

func (s *Store) Len() int {
	return len(s.baseline)
}

// Reset discards a working copy by handing back a fresh copy of baseline.
func Reset(baseline Tasks) Tasks {
	out := baseline.Clone()
	if out == nil {
		out = Tasks{}
	}
	return out
}
