package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/kpi"
	"github.com/sadopc/cockpit/internal/session"
)

type autonomousModel struct {
	sess   *session.Session
	width  int
	height int

	spark sparkline.Model

	formActive bool
	form       *huh.Form
	change     *string
}

func newAutonomousModel(s *session.Session) autonomousModel {
	c := ""
	a := autonomousModel{sess: s, change: &c}
	a.buildSpark()
	return a
}

func (a *autonomousModel) setSize(w, h int) {
	a.width = w
	a.height = h
	a.buildSpark()
}

func (a *autonomousModel) buildSpark() {
	a.spark = sparkline.New(max(20, a.width/3), 4)
	for _, p := range a.sess.Snapshot().MTBF {
		a.spark.Push(p.Hours)
	}
	a.spark.Draw()
}

func (a autonomousModel) update(msg tea.Msg) (autonomousModel, tea.Cmd) {
	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.Generate) {
			return a.showForm()
		}
	}
	return a, nil
}

func (a autonomousModel) showForm() (autonomousModel, tea.Cmd) {
	*a.change = ""
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Describe the change to simulate").
				Placeholder("e.g. Apply patch KB5034122 to LIMS-PROD").
				Value(a.change),
		),
	).WithShowHelp(true)
	a.formActive = true
	return a, a.form.Init()
}

func (a autonomousModel) updateForm(msg tea.Msg) (autonomousModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.formActive = false
			a.form = nil
			return a, nil
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.formActive = false
		r := advisor.SimulateChange(*a.change)
		a.sess.SetTwin(session.TwinRecord{Change: r.Change, Risk: string(r.Risk), Impact: r.Impact})
		return a, nil
	}
	return a, cmd
}

func (a autonomousModel) view() string {
	w := a.width - 4
	snap := a.sess.Snapshot()
	title := titleStyle.Render("Autonomous Operations")

	if a.formActive && a.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", titleStyle.Render("Digital twin"), a.form.View()),
		)
	}

	preds := snap.MaintenanceFor(a.sess.Site())
	mtbf, delta, ok := kpi.MTBFTrend(snap.MTBF)
	mtbfValue, mtbfNote := "n/a", "not enough history"
	if ok {
		mtbfValue = fmt.Sprintf("%.0f h", mtbf)
		mtbfNote = fmt.Sprintf("%+.0f h vs last month", delta)
	}

	row := cards(w/2,
		[3]string{"Downtime Avoided", fmt.Sprintf("%d events", kpi.DowntimeEventsAvoided(preds)), fmt.Sprintf("%d h per event", kpi.EventHours)},
		[3]string{"Fleet MTBF", mtbfValue, mtbfNote},
	)
	trend := lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render("MTBF, last 12 months"), a.spark.View())

	twin := mutedStyle.Render("  enter: run a change through the digital twin")
	if r := a.sess.Twin(); r != nil {
		twin = activePanelStyle.Width(max(20, w-6)).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Digital twin: ")+riskStyle(r.Risk).Render(r.Risk+" risk"),
			"",
			r.Impact,
		))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "",
		lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", trend),
		"",
		renderMaintenance(preds, w),
		"",
		twin,
	))
}

func renderMaintenance(preds []dataset.MaintenancePrediction, w int) string {
	if len(preds) == 0 {
		return mutedStyle.Render("  No instruments for selected site")
	}
	top := kpi.MaxRisk(preds)

	var rows []string
	rows = append(rows, titleStyle.Render("Predictive maintenance"))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %-10s %8s %9s  %s", "Instrument", "Site", "Risk", "Avoided", "Work order")))
	rows = append(rows, rule(w, 72))
	for i, p := range preds {
		line := fmt.Sprintf("  %-24s %-10s %7.1f%% %8.0fh  %s",
			truncate(p.Instrument, 24), p.Site, p.FailureRiskPct, p.DowntimeAvoidedHours, p.WorkOrder)
		switch {
		case i == top:
			line = alertStyle.Render(line)
		case p.FailureRiskPct > dataset.HighRiskThreshold:
			line = errorStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func riskStyle(level string) lipgloss.Style {
	switch advisor.RiskLevel(level) {
	case advisor.RiskHigh:
		return errorStyle
	case advisor.RiskMedium:
		return warningStyle
	}
	return successStyle
}
