package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorBg        = lipgloss.Color("#1A1B26")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// heat ramp, cold to hot
var heatColors = []lipgloss.Color{"#1F2A44", "#24466B", "#2E6F8E", "#2EC4B6", "#F39C12", "#E74C3C"}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1).
			MarginRight(1)

	// Banners
	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBg).
			Background(colorError).
			Padding(0, 1)

	okBannerStyle = lipgloss.NewStyle().
			Foreground(colorBg).
			Background(colorSuccess).
			Padding(0, 1)

	// Gantt bars
	ganttBarStyle     = lipgloss.NewStyle().Foreground(colorSecondary)
	ganttDelayedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	ganttCascadeStyle = lipgloss.NewStyle().Foreground(colorWarning)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// heatStyle picks a cell style for level in 0..1.
func heatStyle(level float64) lipgloss.Style {
	i := int(level * float64(len(heatColors)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(heatColors) {
		i = len(heatColors) - 1
	}
	return lipgloss.NewStyle().
		Background(heatColors[i]).
		Foreground(colorFg).
		Align(lipgloss.Center)
}

// statusStyle colours a portfolio or action status.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "At Risk", "Rejected":
		return errorStyle
	case "Due Soon", "Pending", "Not Started":
		return warningStyle
	case "Complete", "Approved", "Validated", "On Track":
		return successStyle
	}
	return normalItemStyle
}
