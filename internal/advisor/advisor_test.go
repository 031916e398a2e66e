package advisor

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC) // a Wednesday

func TestWeeklyBriefing(t *testing.T) {
	snap := dataset.Generate(dataset.DefaultSeed, now)
	tasks := snap.Portfolio.Clone()
	tasks[0].Status = portfolio.StatusAtRisk

	text, err := WeeklyBriefing(portfolio.SiteAll, snap, tasks)
	require.NoError(t, err)

	assert.Contains(t, text, "WEEKLY SITE BRIEFING: San Diego")
	assert.Contains(t, text, "Week of Jun 09, 2025")
	assert.Contains(t, text, snap.SystemicRisk.Title)
	assert.Contains(t, text, "PROJECTS AT RISK")
	assert.Contains(t, text, tasks[0].Name)
	assert.Contains(t, text, "MTBF")
}

func TestWeeklyBriefing_NoAtRiskSection(t *testing.T) {
	snap := dataset.Generate(dataset.DefaultSeed, now)
	tasks := snap.Portfolio.Clone()
	for i := range tasks {
		tasks[i].Status = portfolio.StatusOnTrack
	}

	text, err := WeeklyBriefing(portfolio.SiteSeattle, snap, tasks)
	require.NoError(t, err)
	assert.Contains(t, text, "WEEKLY SITE BRIEFING: Seattle")
	assert.NotContains(t, text, "PROJECTS AT RISK")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0k", Money(0))
	assert.Equal(t, "$950k", Money(950))
	assert.Equal(t, "$1,250k", Money(1250))
	assert.Equal(t, "$1,234,568k", Money(1234567.8))
	assert.Equal(t, "$-4,000k", Money(-4000))
}

func TestCapexProposal(t *testing.T) {
	drain := dataset.Asset{ID: "HPLC-01", Type: "HPLC", Site: portfolio.SiteSanDiego, UptimePct: 88, TCOk: 400, ScientificImpact: 8}

	text, err := CapexProposal(drain)
	require.NoError(t, err)
	assert.Contains(t, text, "Asset: HPLC-01 (HPLC, San Diego)")
	assert.Contains(t, text, "$400k")
	assert.Contains(t, text, "Approve replacement")

	again, err := CapexProposal(drain)
	require.NoError(t, err)
	assert.Equal(t, text, again)

	reliable := drain
	reliable.UptimePct = 99
	text, err = CapexProposal(reliable)
	require.NoError(t, err)
	assert.Contains(t, text, "Defer replacement")
}

func TestSimulateChange(t *testing.T) {
	tests := []struct {
		change string
		risk   RiskLevel
		system string
	}{
		{"Apply security patch KB5034122 to LIMS-PROD server", RiskMedium, "LIMS"},
		{"Database migration for ELN", RiskHigh, "ELN"},
		{"Rename a shared folder", RiskLow, ""},
	}
	for _, tt := range tests {
		got := SimulateChange(tt.change)
		assert.Equal(t, tt.risk, got.Risk, tt.change)
		if tt.system != "" {
			assert.Contains(t, got.Impact, tt.system)
		} else {
			assert.Contains(t, got.Impact, "No GxP-validated systems affected")
		}
	}

	empty := SimulateChange("   ")
	assert.Equal(t, RiskLow, empty.Risk)
	assert.Contains(t, empty.Impact, "no change described")
}

func TestSearchAuditLog(t *testing.T) {
	log := []dataset.AuditEntry{
		{User: "davis_c", System: "LIMS-PROD", Action: "LOGIN"},
		{User: "davis_c", System: "ELN-PROD", Action: "RECORD_MODIFIED"},
		{User: "ruiz_c", System: "LIMS-PROD", Action: "CONFIG_CHANGE"},
		{User: "system", System: "CDS-01", Action: "AUDIT_TRAIL_EXPORT"},
	}

	got := SearchAuditLog(log, "Show actions by user 'davis_c' on LIMS-PROD")
	require.Len(t, got, 1)
	assert.Equal(t, "LOGIN", got[0].Action)

	got = SearchAuditLog(log, "davis_c")
	assert.Len(t, got, 2)

	got = SearchAuditLog(log, "lims-prod")
	assert.Len(t, got, 2)

	got = SearchAuditLog(log, "config_change")
	require.Len(t, got, 1)
	assert.Equal(t, "ruiz_c", got[0].User)

	assert.Len(t, SearchAuditLog(log, ""), len(log))
	assert.Empty(t, SearchAuditLog(log, "nobody-here"))
}

func TestTokenize(t *testing.T) {
	got := tokenize("Show 'davis_c' on LIMS-PROD, please")
	assert.Equal(t, []string{"show", "davis_c", "on", "lims-prod", "please"}, got)
	assert.False(t, strings.Contains(strings.Join(got, ""), "'"))
}
