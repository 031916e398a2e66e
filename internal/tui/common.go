package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/portfolio"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewModeler
	viewFinOps
	viewLabOps
	viewAutonomous
	viewGxP
	viewLeadership
	viewActions
	viewSettings
)

var viewNames = []string{"Home", "Modeler", "FinOps", "Lab Ops", "Autonomous", "GxP", "Leadership", "Actions", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type siteChangedMsg struct {
	site portfolio.Site
}

// --- Helpers ---

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// rule draws an indented divider at most n cells wide that fits in w.
func rule(w, n int) string {
	return mutedStyle.Render("  " + strings.Repeat("─", max(0, min(w-6, n))))
}

// kpiCard renders a small bordered metric box.
func kpiCard(label, value, note string, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(label),
		titleStyle.Render(value),
		subtitleStyle.Render(note),
	)
	return cardStyle.Width(width).Render(body)
}

// cards lays out kpi cards in one row, sized to fit width.
func cards(width int, items ...[3]string) string {
	if len(items) == 0 {
		return ""
	}
	w := max(16, width/len(items)-4)
	var out []string
	for _, it := range items {
		out = append(out, kpiCard(it[0], it[1], it[2], w))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// heatmap renders m as a grid of shaded cells. Values are scaled between
// the matrix minimum and maximum.
func heatmap(m dataset.Matrix, format string) string {
	if m.Empty() {
		return mutedStyle.Render("  No data for selected site")
	}
	lo, hi := m.Values[0][0], m.Values[0][0]
	for _, row := range m.Values {
		for _, v := range row {
			lo = min64(lo, v)
			hi = max64(hi, v)
		}
	}

	labelW := 0
	for _, r := range m.Rows {
		labelW = max(labelW, len([]rune(r)))
	}
	labelW = min(labelW, 24)
	cellW := 8
	for _, c := range m.Cols {
		cellW = max(cellW, min(len([]rune(c))+1, 14))
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelW+3))
	for _, c := range m.Cols {
		b.WriteString(mutedStyle.Width(cellW).Render(truncate(c, cellW-1)))
	}
	b.WriteString("\n")

	for i, r := range m.Rows {
		b.WriteString("  " + lipgloss.NewStyle().Width(labelW+1).Render(truncate(r, labelW)))
		for _, v := range m.Values[i] {
			level := 0.0
			if hi > lo {
				level = (v - lo) / (hi - lo)
			}
			b.WriteString(heatStyle(level).Width(cellW).Render(fmt.Sprintf(format, v)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// siteLabel shortens the all-sites label for the header.
func siteLabel(s portfolio.Site) string {
	if s == portfolio.SiteAll {
		return "West Coast"
	}
	return string(s)
}

// nextSite cycles through the selectable sites.
func nextSite(s portfolio.Site) portfolio.Site {
	for i, site := range portfolio.Sites {
		if site == s {
			return portfolio.Sites[(i+1)%len(portfolio.Sites)]
		}
	}
	return portfolio.SiteAll
}
