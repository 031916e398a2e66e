package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/sadopc/cockpit/internal/session"
)

type modelerModel struct {
	sess   *session.Session
	width  int
	height int

	result portfolio.Result

	formActive bool
	form       *huh.Form
	pick       *string
}

func newModelerModel(s *session.Session) modelerModel {
	p := ""
	m := modelerModel{sess: s, pick: &p}
	m.result = s.Simulate()
	return m
}

func (m *modelerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// refresh re-runs the simulation for the session's current inputs.
func (m modelerModel) refresh() modelerModel {
	m.result = m.sess.Simulate()
	return m
}

func (m modelerModel) update(msg tea.Msg) (modelerModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case siteChangedMsg:
		return m.refresh(), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.sess.SetDelay(m.sess.DelayWeeks() - 1)
			return m.refresh(), nil
		case key.Matches(msg, keys.Right):
			m.sess.SetDelay(m.sess.DelayWeeks() + 1)
			return m.refresh(), nil
		case key.Matches(msg, keys.Up):
			m.step(-1)
			return m.refresh(), nil
		case key.Matches(msg, keys.Down):
			m.step(1)
			return m.refresh(), nil
		case key.Matches(msg, keys.Reset):
			m.sess.Reset()
			m = m.refresh()
			return m, func() tea.Msg { return statusMsg{text: "Timeline reset to baseline"} }
		case key.Matches(msg, keys.Enter):
			return m.showPicker()
		}
	}
	return m, nil
}

// step moves the selection through the working copy.
func (m modelerModel) step(d int) {
	names := m.sess.WorkingCopy().Names()
	if len(names) == 0 {
		return
	}
	i := 0
	for j, n := range names {
		if n == m.sess.Selected() {
			i = j
			break
		}
	}
	i = (i + d + len(names)) % len(names)
	m.sess.Select(names[i])
}

func (m modelerModel) showPicker() (modelerModel, tea.Cmd) {
	names := m.sess.WorkingCopy().Names()
	if len(names) == 0 {
		return m, nil
	}
	*m.pick = m.sess.Selected()
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select project to delay").
				Options(huh.NewOptions(names...)...).
				Value(m.pick),
		),
	).WithShowHelp(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m modelerModel) updateForm(msg tea.Msg) (modelerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.sess.Select(*m.pick)
		return m.refresh(), nil
	}
	return m, cmd
}

func (m modelerModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Portfolio Timeline Modeler")

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	res := m.result
	if res.Outcome == portfolio.OutcomeEmpty {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", warningStyle.Render(res.Message()),
		))
	}

	controls := fmt.Sprintf("Project: %s   Delay: %s",
		highlightStyle.Render(m.sess.Selected()),
		highlightStyle.Render(fmt.Sprintf("%d/%d weeks", m.sess.DelayWeeks(), portfolio.MaxDelayWeeks)),
	)

	impact := cards(w,
		[3]string{"Budget Impact", "+" + advisor.Money(res.CostImpact), "delay × weekly run rate"},
		[3]string{"Finish Date", finishLabel(res), "selected project"},
	)

	var banner string
	switch {
	case res.CascadeTarget != "":
		banner = alertStyle.Render(res.CascadeMessage())
	case res.Outcome == portfolio.OutcomeApplied || res.Outcome == portfolio.OutcomeNoChange:
		banner = okBannerStyle.Render(res.Message())
	default:
		banner = warningStyle.Render(res.Message())
	}

	gantt := renderGantt(m.sess.WorkingCopy(), res, max(20, w-8))
	nav := mutedStyle.Render("  ↑/↓: project  ←/→: delay  enter: pick  r: reset")

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", controls, "", impact, "", banner, "", gantt, "", nav,
	))
}

func finishLabel(res portfolio.Result) string {
	if !res.Changed() {
		if res.OriginalFinish.IsZero() {
			return "-"
		}
		return res.OriginalFinish.Format("Jan 02, 2006")
	}
	return fmt.Sprintf("%s → %s", res.OriginalFinish.Format("Jan 02"), res.AdjustedFinish.Format("Jan 02, 2006"))
}

// renderGantt draws one bar per task over the schedule's span. baseline is
// the schedule before the delay; the added weeks are drawn in the delay
// colour and the cascade target is flagged.
func renderGantt(baseline portfolio.Tasks, res portfolio.Result, width int) string {
	tasks := res.Schedule
	if len(tasks) == 0 {
		return ""
	}
	lo, hi := tasks.Span()
	if !hi.After(lo) {
		hi = lo.Add(24 * time.Hour)
	}

	labelW := 0
	for _, t := range tasks {
		labelW = max(labelW, len([]rune(t.Name)))
	}
	labelW = min(labelW, 30)
	barW := max(10, width-labelW-4)
	span := hi.Sub(lo)

	col := func(t time.Time) int {
		return int(float64(barW) * float64(t.Sub(lo)) / float64(span))
	}

	var rows []string
	axis := strings.Repeat(" ", labelW+2) + mutedStyle.Render(fmt.Sprintf("%-*s%s", max(0, barW-11), lo.Format("Jan 2006"), hi.Format("Jan 2006")))
	rows = append(rows, axis)

	for i, t := range tasks {
		start := min(col(t.Start), barW-1)
		end := max(col(t.Finish), start+1)
		end = min(end, barW)
		base := end
		if i < len(baseline) && baseline[i].Name == t.Name {
			base = min(max(col(baseline[i].Finish), start+1), end)
		}

		style := ganttBarStyle
		if t.Name == res.CascadeTarget {
			style = ganttCascadeStyle
		}
		bar := strings.Repeat(" ", start) +
			style.Render(strings.Repeat("█", base-start)) +
			ganttDelayedStyle.Render(strings.Repeat("▓", end-base)) +
			strings.Repeat(" ", barW-end)

		label := lipgloss.NewStyle().Width(labelW).Render(truncate(t.Name, labelW))
		rows = append(rows, label+"  "+bar+" "+statusStyle(string(t.Status)).Render(string(t.Status)))
	}
	return strings.Join(rows, "\n")
}
