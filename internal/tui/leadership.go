package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/session"
)

type leadershipModel struct {
	sess   *session.Session
	width  int
	height int
}

func newLeadershipModel(s *session.Session) leadershipModel {
	return leadershipModel{sess: s}
}

func (l *leadershipModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l leadershipModel) view() string {
	w := l.width - 4
	snap := l.sess.Snapshot()
	site := l.sess.Site()

	title := titleStyle.Render("Leadership & Talent")

	gap := activePanelStyle.Width(max(20, w-6)).Render(lipgloss.JoinVertical(lipgloss.Left,
		accentStyle.Bold(true).Render("Skills gap: "+snap.SkillsGap.Gap),
		successStyle.Render("Recommendation: ")+snap.SkillsGap.Recommendation,
	))

	team := snap.TeamFor(site)
	var rows []string
	rows = append(rows, titleStyle.Render("Skills matrix"))
	if len(team) == 0 {
		rows = append(rows, mutedStyle.Render("  No team members for selected site"))
	} else {
		colW := 14
		head := fmt.Sprintf("  %-18s", "Member")
		for _, d := range snap.SkillDomains {
			head += lipgloss.NewStyle().Width(colW).Render(truncate(d, colW-1))
		}
		rows = append(rows, mutedStyle.Render(head))
		for _, m := range team {
			line := fmt.Sprintf("  %-18s", truncate(m.Name, 18))
			for _, d := range snap.SkillDomains {
				level := m.Skills[d]
				style := normalItemStyle
				if level == "Beginner" {
					style = alertStyle
				}
				line += lipgloss.NewStyle().Width(colW).Render(style.Render(level))
			}
			rows = append(rows, line)
		}
	}

	alloc := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Resource allocation (% capacity)"),
		heatmap(snap.AllocationFor(site), "%.0f"),
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", gap, "", strings.Join(rows, "\n"), "", alloc,
	))
}
