package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/session"
)

type actionsModel struct {
	sess   *session.Session
	width  int
	height int

	cursor int
}

func newActionsModel(s *session.Session) actionsModel {
	return actionsModel{sess: s}
}

func (a *actionsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a actionsModel) update(msg tea.Msg) (actionsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	items := a.sess.Actions()

	switch {
	case key.Matches(km, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(km, keys.Down):
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case key.Matches(km, keys.Approve), key.Matches(km, keys.Reject):
		if a.cursor >= len(items) {
			return a, nil
		}
		approve := key.Matches(km, keys.Approve)
		id := items[a.cursor].ID
		if err := a.sess.Decide(id, approve); err != nil {
			return a, func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
		}
		verb := "Rejected"
		if approve {
			verb = "Approved"
		}
		return a, func() tea.Msg { return statusMsg{text: fmt.Sprintf("%s %s", verb, id)} }
	case key.Matches(km, keys.Briefing):
		text, err := advisor.WeeklyBriefing(a.sess.Site(), a.sess.Snapshot(), a.sess.Portfolio())
		if err != nil {
			return a, func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
		}
		a.sess.SetBriefing(text)
		return a, func() tea.Msg { return statusMsg{text: "Weekly briefing generated"} }
	}
	return a, nil
}

func (a actionsModel) view() string {
	w := a.width - 4
	title := titleStyle.Render("Action Center")
	items := a.sess.Actions()
	pending := len(a.sess.PendingActions())

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d pending of %d", pending, len(items))))
	rows = append(rows, "")
	for i, it := range items {
		cursor := "  "
		style := normalItemStyle
		if i == a.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-16s %-15s", cursor, it.ID, it.Type))+
			statusStyle(string(it.Status)).Render(fmt.Sprintf("%-9s", it.Status)))
		desc := "    " + truncate(it.Description, max(20, w-10))
		if it.Status != dataset.ActionPending {
			desc = mutedStyle.Render(desc)
		}
		rows = append(rows, desc)
	}

	briefing := mutedStyle.Render("  b: generate weekly briefing")
	if text := a.sess.Briefing(); text != "" {
		briefing = activePanelStyle.Width(max(20, w-6)).Render(strings.TrimRight(text, "\n"))
	}

	nav := mutedStyle.Render("  ↑/↓: select  a: approve  x: reject  b: briefing")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", strings.Join(rows, "\n"), "", briefing, "", nav,
	))
}
