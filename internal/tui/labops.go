package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/kpi"
	"github.com/sadopc/cockpit/internal/session"
)

type labopsModel struct {
	sess   *session.Session
	width  int
	height int
}

func newLabopsModel(s *session.Session) labopsModel {
	return labopsModel{sess: s}
}

func (l *labopsModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l labopsModel) view() string {
	w := l.width - 4
	snap := l.sess.Snapshot()

	title := titleStyle.Render("Lab Operations")
	util := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Instrument utilization (%)"),
		heatmap(snap.Utilization, "%.0f"),
	)

	var rows []string
	rows = append(rows, titleStyle.Render("Sample journey"))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-22s %-17s %-18s %s", "Step", "Time", "Location", "Operator")))
	rows = append(rows, rule(w, 72))
	for _, e := range snap.SampleJourney {
		rows = append(rows, fmt.Sprintf("  %-22s %-17s %-18s %s",
			truncate(e.Step, 22), e.Timestamp.Format("Jan 02 15:04"), truncate(e.Location, 18), e.Operator))
	}
	ttr := kpi.Turnaround(snap.SampleJourney)
	rows = append(rows, "")
	rows = append(rows, "  Total turnaround: "+highlightStyle.Render(fmt.Sprintf("%.1f hours", ttr.Hours())))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", util, "", strings.Join(rows, "\n"),
	))
}
