package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/export"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/sadopc/cockpit/internal/session"
	"github.com/sadopc/cockpit/internal/store"
)

var exportFormats = []string{"Schedule CSV", "Schedule JSON", "Weekly briefing (text)"}

// App is the root Bubble Tea model.
type App struct {
	sess      *session.Session
	store     *store.Store
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home       homeModel
	modeler    modelerModel
	finops     finopsModel
	labops     labopsModel
	autonomous autonomousModel
	gxp        gxpModel
	leadership leadershipModel
	actions    actionsModel
	settings   settingsModel

	help   help.Model
	status string
}

func NewApp(sess *session.Session, s *store.Store, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		sess:       sess,
		store:      s,
		exportDir:  exportDir,
		activeView: viewHome,
		home:       newHomeModel(sess),
		modeler:    newModelerModel(sess),
		finops:     newFinopsModel(sess),
		labops:     newLabopsModel(sess),
		autonomous: newAutonomousModel(sess),
		gxp:        newGxpModel(sess),
		leadership: newLeadershipModel(sess),
		actions:    newActionsModel(sess),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.settings.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.modeler.setSize(a.width, contentHeight)
		a.finops.setSize(a.width, contentHeight)
		a.labops.setSize(a.width, contentHeight)
		a.autonomous.setSize(a.width, contentHeight)
		a.gxp.setSize(a.width, contentHeight)
		a.leadership.setSize(a.width, contentHeight)
		a.actions.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Site):
			return a.switchSite(nextSite(a.sess.Site()))
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}
		if v, ok := tabView(msg); ok {
			a.activeView = v
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case settingsSavedMsg:
		a.exportDir = msg.cfg.ExportDir
		a.status = "Settings saved"
		site, err := portfolio.ParseSite(msg.cfg.Site)
		if err != nil || site == a.sess.Site() {
			return a, nil
		}
		return a.switchSite(site)

	case siteChangedMsg:
		a.modeler, _ = a.modeler.update(msg)
		a.finops, _ = a.finops.update(msg)
		a.status = "Site: " + string(msg.site)
		return a, nil
	}

	return a.updateActiveView(msg)
}

// switchSite changes the session's site and tells the pages that cache
// site-dependent state.
func (a App) switchSite(site portfolio.Site) (tea.Model, tea.Cmd) {
	a.sess.SetSite(site)
	return a, func() tea.Msg { return siteChangedMsg{site: site} }
}

func tabView(msg tea.KeyMsg) (viewState, bool) {
	tabs := []key.Binding{keys.Tab1, keys.Tab2, keys.Tab3, keys.Tab4, keys.Tab5, keys.Tab6, keys.Tab7, keys.Tab8, keys.Tab9}
	for i, b := range tabs {
		if key.Matches(msg, b) {
			return viewState(i), true
		}
	}
	return 0, false
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewModeler:
		a.modeler, cmd = a.modeler.update(msg)
	case viewFinOps:
		a.finops, cmd = a.finops.update(msg)
	case viewAutonomous:
		a.autonomous, cmd = a.autonomous.update(msg)
	case viewGxP:
		a.gxp, cmd = a.gxp.update(msg)
	case viewActions:
		a.actions, cmd = a.actions.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewModeler:
		return a.modeler.formActive
	case viewAutonomous:
		return a.autonomous.formActive
	case viewGxP:
		return a.gxp.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	if a.activeView == viewSettings {
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewModeler:
		content = a.modeler.view()
	case viewFinOps:
		content = a.finops.view()
	case viewLabOps:
		content = a.labops.view()
	case viewAutonomous:
		content = a.autonomous.view()
	case viewGxP:
		content = a.gxp.view()
	case viewLeadership:
		content = a.leadership.view()
	case viewActions:
		content = a.actions.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("DTE cockpit")
	site := highlightStyle.Render(" · " + siteLabel(a.sess.Site()))
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(site) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, site, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Pending approvals indicator
	pending := ""
	if n := len(a.sess.PendingActions()); n > 0 {
		pending = warningStyle.Render(fmt.Sprintf(" ● %d pending", n))
	}

	left := footerStyle.Render(helpView)
	right := pending + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	res := a.sess.Simulate()
	briefing := a.sess.Briefing()
	if format == 2 && briefing == "" {
		text, err := advisor.WeeklyBriefing(a.sess.Site(), a.sess.Snapshot(), a.sess.Portfolio())
		if err != nil {
			return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Briefing error: %v", err), isError: true} }
		}
		a.sess.SetBriefing(text)
		briefing = text
	}
	dir := a.exportDir
	logger := a.sess.Logger()

	return func() tea.Msg {
		now := time.Now()
		var path string
		var err error
		switch format {
		case 0:
			path = export.Path(dir, "cockpit-schedule", "csv", now)
			err = export.ToCSV(res, path)
		case 1:
			path = export.Path(dir, "cockpit-schedule", "json", now)
			err = export.ToJSON(res, path)
		default:
			path = export.Path(dir, "cockpit-briefing", "txt", now)
			err = export.ToText(briefing, path)
		}
		if err != nil {
			logger.Error("export_failed", "path", path, "error", err)
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		logger.Info("exported", "path", path)
		return exportDoneMsg{path: path}
	}
}
