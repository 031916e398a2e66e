// Package session holds the per-run dashboard state: the selected site, the
// simulation working copy and the action-center queue.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/portfolio"
)

// Session is created at program start and dropped at exit. It is owned by
// a single UI model and is not safe for concurrent use.
type Session struct {
	ID      uuid.UUID
	Started time.Time

	store    *portfolio.Store
	snapshot *dataset.Snapshot
	logger   *slog.Logger

	site        portfolio.Site
	working     portfolio.Tasks
	selected    string
	delayWeeks  int
	actions     []dataset.ActionItem
	briefing    string
	proposal    string
	proposalFor string
	twin        *TwinRecord
}

// TwinRecord remembers the last digital-twin run.
type TwinRecord struct {
	Change string
	Risk   string
	Impact string
}

// New opens a session over snap. The snapshot's portfolio becomes the
// baseline of the timeline store.
func New(snap *dataset.Snapshot, site portfolio.Site, logger *slog.Logger) (*Session, error) {
	store, err := portfolio.NewStore(snap.Portfolio)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		ID:       uuid.New(),
		Started:  time.Now(),
		store:    store,
		snapshot: snap,
		actions:  dataset.ActionItems(snap.Maintenance),
	}
	s.logger = logger.With("session", s.ID.String())
	s.SetSite(site)
	s.logger.Info("session_started", "site", string(s.site), "tasks", store.Len(), "seed", snap.Seed)
	return s, nil
}

func (s *Session) Snapshot() *dataset.Snapshot { return s.snapshot }
func (s *Session) Site() portfolio.Site        { return s.site }
func (s *Session) Logger() *slog.Logger        { return s.logger }

// SetSite switches the site view. The working copy is reloaded for the new
// site, which also drops any pending simulation.
func (s *Session) SetSite(site portfolio.Site) {
	if site == "" {
		site = portfolio.SiteAll
	}
	s.site = site
	s.Reset()
}

// Portfolio returns the baseline tasks for the current site.
func (s *Session) Portfolio() portfolio.Tasks {
	return s.store.Load(s.site)
}

// WorkingCopy returns a copy of the session's working timeline.
func (s *Session) WorkingCopy() portfolio.Tasks {
	return s.working.Clone()
}

// Reset discards the working copy and simulation inputs.
func (s *Session) Reset() {
	s.working = portfolio.Reset(s.store.Load(s.site))
	s.delayWeeks = 0
	s.selected = ""
	if len(s.working) > 0 {
		s.selected = s.working[0].Name
	}
	s.logger.Debug("simulation_reset", "site", string(s.site), "tasks", len(s.working))
}

func (s *Session) Selected() string { return s.selected }
func (s *Session) DelayWeeks() int  { return s.delayWeeks }

// Select picks the task to delay. Unknown names are kept; the simulation
// reports them as a no match.
func (s *Session) Select(name string) {
	s.selected = name
}

// SetDelay clamps weeks into 0..MaxDelayWeeks.
func (s *Session) SetDelay(weeks int) {
	switch {
	case weeks < 0:
		weeks = 0
	case weeks > portfolio.MaxDelayWeeks:
		weeks = portfolio.MaxDelayWeeks
	}
	s.delayWeeks = weeks
}

// Simulate runs the delay simulator over the working copy with the current
// selection. The working copy itself is left as is.
func (s *Session) Simulate() portfolio.Result {
	res := portfolio.Simulate(s.working, s.selected, s.delayWeeks)
	if res.Changed() {
		s.logger.Info("simulation",
			"task", res.Task,
			"delay_weeks", res.DelayWeeks,
			"cost_impact_k", res.CostImpact,
			"cascade", res.CascadeTarget,
		)
	}
	return res
}

// PendingActions lists the items still awaiting a decision.
func (s *Session) PendingActions() []dataset.ActionItem {
	var out []dataset.ActionItem
	for _, a := range s.actions {
		if a.Status == dataset.ActionPending {
			out = append(out, a)
		}
	}
	return out
}

func (s *Session) Actions() []dataset.ActionItem {
	return append([]dataset.ActionItem(nil), s.actions...)
}

// Decide approves or rejects a pending item. Decided items cannot be
// changed again.
func (s *Session) Decide(id string, approve bool) error {
	for i := range s.actions {
		if s.actions[i].ID != id {
			continue
		}
		if s.actions[i].Status != dataset.ActionPending {
			return fmt.Errorf("action %s already %s", id, s.actions[i].Status)
		}
		s.actions[i].Status = dataset.ActionRejected
		if approve {
			s.actions[i].Status = dataset.ActionApproved
		}
		s.logger.Info("action_decided", "id", id, "status", string(s.actions[i].Status))
		return nil
	}
	return fmt.Errorf("action %s not found", id)
}

func (s *Session) Briefing() string { return s.briefing }

func (s *Session) SetBriefing(text string) {
	s.briefing = text
	s.logger.Info("briefing_generated", "site", string(s.site), "bytes", len(text))
}

// Proposal returns the last CapEx proposal if it was drafted for assetID.
func (s *Session) Proposal(assetID string) (string, bool) {
	if s.proposal == "" || s.proposalFor != assetID {
		return "", false
	}
	return s.proposal, true
}

func (s *Session) SetProposal(assetID, text string) {
	s.proposal = text
	s.proposalFor = assetID
	s.logger.Info("capex_drafted", "asset", assetID)
}

func (s *Session) Twin() *TwinRecord { return s.twin }

func (s *Session) SetTwin(r TwinRecord) {
	s.twin = &r
	s.logger.Info("twin_simulated", "risk", r.Risk)
}
