// Package advisor builds the templated text reports: weekly briefing, CapEx
// proposal, digital-twin change assessment and audit-trail search.
package advisor

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/kpi"
	"github.com/sadopc/cockpit/internal/portfolio"
)

var funcs = template.FuncMap{
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"money": func(v float64) string { return fmt.Sprintf("$%sk", thousands(v)) },
	"date":  func(t time.Time) string { return t.Format("Jan 02, 2006") },
}

var briefingTmpl = template.Must(template.New("briefing").Funcs(funcs).Parse(
	`WEEKLY SITE BRIEFING: {{.Site}}
Week of {{date .Week}}

EXECUTIVE SUMMARY
- Lab OEE is {{pct .OEE}} against a >90% target.
- {{.Health.OnTrack}} of {{.Health.Total}} projects on track{{if .Health.AtRisk}}, {{.Health.AtRisk}} at risk{{end}}.
- Compliance risk score: {{.ComplianceRisk}} (lower is better).
- Financial velocity: {{pct .BurnRate}} of budget spent ({{money .Spend}} of {{money .Budget}}).

TOP RISK
{{.Risk.Title}}
{{.Risk.Insight}}
Recommendation: {{.Risk.Recommendation}}
{{if .AtRisk}}
PROJECTS AT RISK
{{range .AtRisk}}- {{.Name}} (finish {{date .Finish}}, {{money .WeeklyCost}}/week)
{{end}}{{end}}
RELIABILITY
- {{.Avoided}} downtime events avoided YTD through predictive maintenance.
{{- if .HasMTBF}}
- MTBF {{printf "%.0f" .MTBF}} hours ({{printf "%+.0f" .MTBFDelta}}h vs last month).
{{- end}}
`))

type briefingData struct {
	Site           portfolio.Site
	Week           time.Time
	OEE            float64
	Health         kpi.Health
	ComplianceRisk int
	BurnRate       float64
	Spend, Budget  float64
	Risk           dataset.Insight
	AtRisk         []portfolio.Task
	Avoided        int
	HasMTBF        bool
	MTBF           float64
	MTBFDelta      float64
}

// WeeklyBriefing summarises the snapshot for site leadership. The all-sites
// view is briefed as San Diego, the site that owns the leadership meeting.
func WeeklyBriefing(site portfolio.Site, snap *dataset.Snapshot, tasks portfolio.Tasks) (string, error) {
	if site == portfolio.SiteAll || site == "" {
		site = portfolio.SiteSanDiego
	}
	rate, spend, budget := kpi.BurnRate(snap.Financials)
	mtbf, delta, ok := kpi.MTBFTrend(snap.MTBF)

	var atRisk []portfolio.Task
	for _, t := range tasks {
		if t.Status == portfolio.StatusAtRisk {
			atRisk = append(atRisk, t)
		}
	}

	data := briefingData{
		Site:           site,
		Week:           weekStart(snap.GeneratedAt),
		OEE:            kpi.OEE(snap.OEE),
		Health:         kpi.PortfolioHealth(tasks),
		ComplianceRisk: snap.ComplianceRisk,
		BurnRate:       rate,
		Spend:          spend,
		Budget:         budget,
		Risk:           snap.SystemicRisk,
		AtRisk:         atRisk,
		Avoided:        kpi.DowntimeEventsAvoided(snap.MaintenanceFor(site)),
		HasMTBF:        ok,
		MTBF:           mtbf,
		MTBFDelta:      delta,
	}

	var buf bytes.Buffer
	if err := briefingTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render briefing: %w", err)
	}
	return buf.String(), nil
}

func weekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	d := t.AddDate(0, 0, 1-wd)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// thousands formats v with comma separators and no decimals.
func thousands(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Money formats a $k figure the way the dashboard displays it.
func Money(v float64) string {
	return fmt.Sprintf("$%sk", thousands(v))
}
