package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/sadopc/cockpit/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	site      *string
	seed      *string
	exportDir *string
}

func newSettingsModel(s *store.Store) settingsModel {
	site, seed, dir := "", "", ""
	return settingsModel{
		store:     s,
		site:      &site,
		seed:      &seed,
		exportDir: &dir,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

type settingsSavedMsg struct {
	cfg store.Config
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.site = s.getVal(store.KeySite, string(portfolio.SiteAll))
	*s.seed = s.getVal(store.KeySeed, "42")
	*s.exportDir = s.getVal(store.KeyExportDir, "")

	var siteOptions []huh.Option[string]
	for _, site := range portfolio.Sites {
		siteOptions = append(siteOptions, huh.NewOption(string(site), string(site)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default site").
				Options(siteOptions...).
				Value(s.site),
			huh.NewInput().Title("Data seed").
				Description("Applied when the portfolio is reseeded").
				Validate(validateSeed).
				Value(s.seed),
			huh.NewInput().Title("Export directory").
				Description("Empty exports to the home directory").
				Value(s.exportDir),
		).Title("Cockpit"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validateSeed(v string) error {
	if _, err := strconv.ParseUint(v, 10, 64); err != nil {
		return fmt.Errorf("seed must be a non-negative integer")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, tea.Batch(s.saveSettings(), s.refresh())
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	site, seed, dir := *s.site, *s.seed, *s.exportDir
	return func() tea.Msg {
		for _, kv := range [][2]string{{store.KeySite, site}, {store.KeySeed, seed}, {store.KeyExportDir, dir}} {
			if err := s.store.SetSetting(kv[0], kv[1]); err != nil {
				return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
			}
		}
		cfg, err := s.store.Config()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		return settingsSavedMsg{cfg: cfg}
	}
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	label := lipgloss.NewStyle().Width(24).Render("max delay")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %s %d weeks (fixed)", label, portfolio.MaxDelayWeeks)))

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.KeyExportDir:
		if v == "" {
			return "(home directory)"
		}
	}
	return v
}
