package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/kpi"
	"github.com/sadopc/cockpit/internal/session"
)

// auditRows caps the audit results shown on screen.
const auditRows = 12

type gxpModel struct {
	sess   *session.Session
	width  int
	height int

	formActive bool
	form       *huh.Form
	query      *string
	lastQuery  string
}

func newGxpModel(s *session.Session) gxpModel {
	q := ""
	return gxpModel{sess: s, query: &q}
}

func (g *gxpModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

func (g gxpModel) update(msg tea.Msg) (gxpModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Search), key.Matches(msg, keys.Enter):
			return g.showForm()
		case key.Matches(msg, keys.Back):
			g.lastQuery = ""
		}
	}
	return g, nil
}

func (g gxpModel) showForm() (gxpModel, tea.Cmd) {
	*g.query = g.lastQuery
	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search the audit trail").
				Placeholder("e.g. changes by jsmith on LIMS").
				Value(g.query),
		),
	).WithShowHelp(true)
	g.formActive = true
	return g, g.form.Init()
}

func (g gxpModel) updateForm(msg tea.Msg) (gxpModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.lastQuery = strings.TrimSpace(*g.query)
		return g, nil
	}
	return g, cmd
}

// validationPriority orders systems by criticality, then by how soon they
// are due.
func validationPriority(items []dataset.ValidationItem) []dataset.ValidationItem {
	out := append([]dataset.ValidationItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Criticality != out[j].Criticality {
			return out[i].Criticality > out[j].Criticality
		}
		return out[i].DaysUntilDue < out[j].DaysUntilDue
	})
	return out
}

func (g gxpModel) view() string {
	w := g.width - 4
	title := titleStyle.Render("GxP Compliance")

	if g.formActive && g.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", g.form.View()),
		)
	}

	snap := g.sess.Snapshot()
	items := snap.ValidationFor(g.sess.Site())
	cov := kpi.ValidationCoverage(items)

	coverage, note := "n/a", "no systems for selected site"
	if cov.Available {
		coverage = pct(cov.Ratio())
		note = fmt.Sprintf("%d of %d systems", cov.Validated, cov.Total)
	}
	row := cards(w,
		[3]string{"Validation Coverage", coverage, note},
		[3]string{"High-Risk Due < 30d", fmt.Sprintf("%d", cov.HighRiskDue), "criticality above 7"},
		[3]string{"Open Compliance Items", fmt.Sprintf("%d", snap.ComplianceRisk), "deviations and CAPAs"},
	)

	var rows []string
	rows = append(rows, titleStyle.Render("Validation priority"))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-22s %-10s %5s %5s %7s  %s", "System", "Site", "Crit", "Due", "Effort", "Status")))
	rows = append(rows, rule(w, 68))
	for _, it := range validationPriority(items) {
		rows = append(rows, fmt.Sprintf("  %-22s %-10s %5d %4dd %6.0fh  %s",
			truncate(it.System, 22), it.Site, it.Criticality, it.DaysUntilDue, it.EffortHours,
			statusStyle(it.Status).Render(it.Status)))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", row, "", strings.Join(rows, "\n"), "", g.renderAudit(snap.AuditLog, w),
	))
}

func (g gxpModel) renderAudit(log []dataset.AuditEntry, w int) string {
	results := advisor.SearchAuditLog(log, g.lastQuery)

	header := titleStyle.Render("Audit navigator")
	if g.lastQuery != "" {
		header += mutedStyle.Render(fmt.Sprintf("  %q · %d matches", g.lastQuery, len(results)))
	}
	rows := []string{header}
	if len(results) == 0 {
		rows = append(rows, mutedStyle.Render("  No audit entries match"))
	}
	for i, e := range results {
		if i == auditRows {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(results)-auditRows)))
			break
		}
		rows = append(rows, fmt.Sprintf("  %s  %-10s %-10s %-18s %s",
			e.Timestamp.Format("Jan 02 15:04"), e.User, e.System, e.Action, truncate(e.Details, max(10, w-70))))
	}
	rows = append(rows, mutedStyle.Render("  /: search  esc: clear"))
	return strings.Join(rows, "\n")
}
