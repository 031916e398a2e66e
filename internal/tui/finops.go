package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/kpi"
	"github.com/sadopc/cockpit/internal/session"
)

var projectColors = []lipgloss.Color{colorPrimary, colorSecondary, colorWarning, colorAccent, colorHighlight}

type finopsModel struct {
	sess   *session.Session
	width  int
	height int

	cursor int
	chart  barchart.Model
	spark  sparkline.Model
}

func newFinopsModel(s *session.Session) finopsModel {
	f := finopsModel{sess: s}
	f.buildCharts()
	return f
}

func (f *finopsModel) setSize(w, h int) {
	f.width = w
	f.height = h
	f.buildCharts()
}

func (f finopsModel) assets() []dataset.Asset {
	return f.sess.Snapshot().AssetsFor(f.sess.Site())
}

func (f finopsModel) update(msg tea.Msg) (finopsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case siteChangedMsg:
		f.cursor = 0
		return f, nil

	case tea.KeyMsg:
		assets := f.assets()
		switch {
		case key.Matches(msg, keys.Up):
			if f.cursor > 0 {
				f.cursor--
			}
		case key.Matches(msg, keys.Down):
			if f.cursor < len(assets)-1 {
				f.cursor++
			}
		case key.Matches(msg, keys.Generate), key.Matches(msg, keys.Enter):
			if f.cursor >= len(assets) {
				return f, nil
			}
			a := assets[f.cursor]
			text, err := advisor.CapexProposal(a)
			if err != nil {
				return f, func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
			}
			f.sess.SetProposal(a.ID, text)
			return f, func() tea.Msg { return statusMsg{text: "CapEx proposal drafted for " + a.ID} }
		}
	}
	return f, nil
}

func (f *finopsModel) buildCharts() {
	snap := f.sess.Snapshot()
	chartWidth := max(20, f.width/2-8)

	f.chart = barchart.New(chartWidth, 10)
	var bars []barchart.BarData
	for i, c := range kpi.CostByProject(snap.CloudCosts) {
		style := lipgloss.NewStyle().Foreground(projectColors[i%len(projectColors)])
		bars = append(bars, barchart.BarData{
			Label:  truncate(c.Label, 10),
			Values: []barchart.BarValue{{Name: c.Label, Value: c.Cost, Style: style}},
		})
	}
	f.chart.PushAll(bars)
	f.chart.Draw()

	f.spark = sparkline.New(chartWidth, 4)
	f.spark.PushAll(kpi.DailySpend(snap.CloudCosts))
	f.spark.Draw()
}

func (f finopsModel) view() string {
	w := f.width - 4
	title := titleStyle.Render("FinOps & Asset Strategy")

	quadrants := f.renderQuadrants()

	snap := f.sess.Snapshot()
	var total float64
	for _, c := range snap.CloudCosts {
		total += c.Cost
	}
	costs := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Cloud cost by project (90 days)"),
		f.chart.View(),
		f.renderLegend(),
		"",
		titleStyle.Render("Daily spend"),
		f.spark.View(),
		mutedStyle.Render(fmt.Sprintf("Total %s", advisor.Money(total/1000))),
	)

	var proposal string
	if assets := f.assets(); f.cursor < len(assets) {
		if text, ok := f.sess.Proposal(assets[f.cursor].ID); ok {
			proposal = activePanelStyle.Width(max(20, w-6)).Render(text)
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(w/2).Render(quadrants),
		costs,
	)
	nav := mutedStyle.Render("  ↑/↓: asset  g: draft CapEx proposal")

	parts := []string{title, "", body}
	if proposal != "" {
		parts = append(parts, "", proposal)
	}
	parts = append(parts, "", nav)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (f finopsModel) renderQuadrants() string {
	positions, meanUptime, meanTCO := kpi.Quadrants(f.assets())
	if len(positions) == 0 {
		return mutedStyle.Render("  No assets for selected site")
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Asset value quadrants"))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  mean uptime %.1f%%  ·  mean TCO %s", meanUptime, advisor.Money(meanTCO))))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %-14s %7s %8s  %s", "Asset", "Type", "Uptime", "TCO", "Quadrant")))
	rows = append(rows, rule(f.width/2, 56))

	for i, p := range positions {
		cursor := "  "
		style := normalItemStyle
		if i == f.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		q := string(p.Quadrant)
		qStyle := normalItemStyle
		switch p.Quadrant {
		case kpi.QuadrantValueDrain:
			qStyle = errorStyle
		case kpi.QuadrantWorkhorse:
			qStyle = successStyle
		case kpi.QuadrantCritical:
			qStyle = warningStyle
		}
		line := style.Render(fmt.Sprintf("%s%-10s %-14s %6.1f%% %8s", cursor, p.Asset.ID, truncate(p.Asset.Type, 14), p.Asset.UptimePct, advisor.Money(p.Asset.TCOk)))
		rows = append(rows, line+"  "+qStyle.Render(q))
	}
	return strings.Join(rows, "\n")
}

func (f finopsModel) renderLegend() string {
	var items []string
	for i, c := range kpi.CostByProject(f.sess.Snapshot().CloudCosts) {
		dot := lipgloss.NewStyle().Foreground(projectColors[i%len(projectColors)]).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, c.Label))
	}
	return strings.Join(items, "  ")
}
