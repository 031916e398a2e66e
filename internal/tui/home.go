package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/kpi"
	"github.com/sadopc/cockpit/internal/session"
)

type homeModel struct {
	sess   *session.Session
	width  int
	height int
}

func newHomeModel(s *session.Session) homeModel {
	return homeModel{sess: s}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h homeModel) view() string {
	w := h.width - 4
	snap := h.sess.Snapshot()
	tasks := h.sess.Portfolio()

	health := kpi.PortfolioHealth(tasks)
	rate, spend, budget := kpi.BurnRate(snap.Financials)

	title := titleStyle.Render("West Coast Executive Summary")
	sub := mutedStyle.Render(fmt.Sprintf("%s · data as of %s", siteLabel(h.sess.Site()), snap.GeneratedAt.Format("Jan 02, 2006")))

	row := cards(w,
		[3]string{"Global OEE", pct(kpi.OEE(snap.OEE)), "availability × performance × quality"},
		[3]string{"Portfolio Health", fmt.Sprintf("%d/%d On Track", health.OnTrack, health.Total), fmt.Sprintf("%d at risk", health.AtRisk)},
		[3]string{"Compliance Risk", fmt.Sprintf("%d open", snap.ComplianceRisk), "deviations and CAPAs"},
		[3]string{"Budget Burn", pct(rate), fmt.Sprintf("%s of %s", advisor.Money(spend), advisor.Money(budget))},
	)

	risk := snap.SystemicRisk
	insight := activePanelStyle.Width(max(20, w-6)).Render(lipgloss.JoinVertical(lipgloss.Left,
		accentStyle.Bold(true).Render("Systemic Risk: "+risk.Title),
		"",
		lipgloss.NewStyle().Width(max(10, w-12)).Render(risk.Insight),
		"",
		successStyle.Render("Recommendation: ")+risk.Recommendation,
	))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, sub, "", row, "", insight),
	)
}
