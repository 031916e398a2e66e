package session

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, site portfolio.Site) *Session {
	t.Helper()
	snap := dataset.Generate(dataset.DefaultSeed, time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC))
	s, err := New(snap, site, nil)
	require.NoError(t, err)
	return s
}

func TestNew_LoadsSiteAndSelectsFirstTask(t *testing.T) {
	s := newTestSession(t, portfolio.SiteSeattle)

	wc := s.WorkingCopy()
	require.NotEmpty(t, wc)
	for _, task := range wc {
		assert.Equal(t, portfolio.SiteSeattle, task.Site)
	}
	assert.Equal(t, wc[0].Name, s.Selected())
	assert.Zero(t, s.DelayWeeks())
	assert.NotEqual(t, [16]byte{}, [16]byte(s.ID))
}

func TestNew_RejectsInvalidPortfolio(t *testing.T) {
	snap := &dataset.Snapshot{Portfolio: portfolio.Tasks{{Name: ""}}}
	_, err := New(snap, portfolio.SiteAll, nil)
	assert.ErrorIs(t, err, portfolio.ErrInvalidTask)
}

func TestSimulate_DoesNotTouchWorkingCopy(t *testing.T) {
	s := newTestSession(t, portfolio.SiteAll)
	before := s.WorkingCopy()

	s.Select(before[0].Name)
	s.SetDelay(4)
	res := s.Simulate()

	require.True(t, res.Changed())
	assert.Equal(t, 4.0*before[0].WeeklyCost, res.CostImpact)
	assert.Equal(t, before, s.WorkingCopy())
}

func TestSetDelay_Clamps(t *testing.T) {
	s := newTestSession(t, portfolio.SiteAll)

	s.SetDelay(-3)
	assert.Equal(t, 0, s.DelayWeeks())
	s.SetDelay(99)
	assert.Equal(t, portfolio.MaxDelayWeeks, s.DelayWeeks())
}

func TestReset_ClearsSimulationInputs(t *testing.T) {
	s := newTestSession(t, portfolio.SiteAll)
	s.Select("CDS Consolidation")
	s.SetDelay(6)

	s.Reset()

	assert.Zero(t, s.DelayWeeks())
	assert.Equal(t, s.Portfolio()[0].Name, s.Selected())
	assert.Equal(t, s.Portfolio(), s.WorkingCopy())
}

func TestSetSite_UnknownSiteYieldsEmptyCopy(t *testing.T) {
	s := newTestSession(t, portfolio.SiteAll)
	s.SetSite(portfolio.Site("Boston"))

	assert.Empty(t, s.WorkingCopy())
	assert.Empty(t, s.Selected())
	res := s.Simulate()
	assert.Equal(t, portfolio.OutcomeEmpty, res.Outcome)
}

func TestDecide(t *testing.T) {
	s := newTestSession(t, portfolio.SiteAll)
	pending := s.PendingActions()
	require.GreaterOrEqual(t, len(pending), 2)

	require.NoError(t, s.Decide(pending[0].ID, true))
	require.NoError(t, s.Decide(pending[1].ID, false))

	assert.Len(t, s.PendingActions(), len(pending)-2)
	all := s.Actions()
	assert.Equal(t, dataset.ActionApproved, all[0].Status)
	assert.Equal(t, dataset.ActionRejected, all[1].Status)

	assert.Error(t, s.Decide(pending[0].ID, false), "decided items are final")
	assert.Error(t, s.Decide("missing", true))
}

func TestProposal_ScopedToAsset(t *testing.T) {
	s := newTestSession(t, portfolio.SiteAll)

	_, ok := s.Proposal("HPLC-01")
	assert.False(t, ok)

	s.SetProposal("HPLC-01", "draft")
	text, ok := s.Proposal("HPLC-01")
	assert.True(t, ok)
	assert.Equal(t, "draft", text)

	_, ok = s.Proposal("MS-02")
	assert.False(t, ok)
}

func TestSimulate_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	snap := dataset.Generate(dataset.DefaultSeed, time.Now())
	s, err := New(snap, portfolio.SiteAll, logger)
	require.NoError(t, err)

	s.SetDelay(2)
	s.Simulate()

	out := buf.String()
	assert.Contains(t, out, "session_started")
	assert.Contains(t, out, "msg=simulation")
	assert.Contains(t, out, "session="+s.ID.String())
}
