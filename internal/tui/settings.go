package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hashira/internal/focus"
	"github.com/sadopc/hashira/internal/store"
)

const (
	settingVolumeStart   = "volume_start"
	settingVolumeEnd     = "volume_end"
	settingVolumeAmbient = "volume_ambient"
	settingDailyGoal     = "daily_goal"
)

type settingsModel struct {
	store  *store.Store
	engine *focus.Engine
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	volumeStart   *string
	volumeEnd     *string
	volumeAmbient *string
	dailyGoal     *string
}

func newSettingsModel(s *store.Store, e *focus.Engine) settingsModel {
	vs, ve, va, dg := "", "", "", ""
	return settingsModel{
		store:         s,
		engine:        e,
		volumeStart:   &vs,
		volumeEnd:     &ve,
		volumeAmbient: &va,
		dailyGoal:     &dg,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
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
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	v := s.engine.Volumes()
	*s.volumeStart = formatVolume(v.Start)
	*s.volumeEnd = formatVolume(v.End)
	*s.volumeAmbient = formatVolume(v.Ambient)
	*s.dailyGoal = strconv.Itoa(s.store.SettingInt(settingDailyGoal, 8))

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start cue volume (0-1)").Value(s.volumeStart).Validate(validateVolume),
			huh.NewInput().Title("End cue volume (0-1)").Value(s.volumeEnd).Validate(validateVolume),
			huh.NewInput().Title("Ambient loop volume (0-1)").Value(s.volumeAmbient).Validate(validateVolume),
		).Title("Sound"),
		huh.NewGroup(
			huh.NewInput().Title("Daily goal (focus sessions)").Value(s.dailyGoal).Validate(validateGoal),
		).Title("Goal"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
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
		goal := s.saveSettings()
		return s, tea.Batch(s.refresh(), func() tea.Msg { return settingsSavedMsg{goal: goal} })
	}

	return s, cmd
}

// saveSettings persists the form and applies the volumes to the running
// engine. It returns the daily goal now in effect.
func (s settingsModel) saveSettings() int {
	s.store.SetSetting(settingVolumeStart, *s.volumeStart)
	s.store.SetSetting(settingVolumeEnd, *s.volumeEnd)
	s.store.SetSetting(settingVolumeAmbient, *s.volumeAmbient)
	s.store.SetSetting(settingDailyGoal, *s.dailyGoal)

	s.engine.SetVolumes(loadVolumes(s.store))
	return s.store.SettingInt(settingDailyGoal, 8)
}

// loadVolumes reads the cue volumes, falling back to the defaults.
func loadVolumes(s *store.Store) focus.Volumes {
	d := focus.DefaultVolumes()
	return focus.Volumes{
		Start:   s.SettingFloat(settingVolumeStart, d.Start),
		End:     s.SettingFloat(settingVolumeEnd, d.End),
		Ambient: s.SettingFloat(settingVolumeAmbient, d.Ambient),
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, title, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	d := s.engine.Durations()
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Durations (from config)"))
	for _, m := range focus.Modes {
		label := lipgloss.NewStyle().Width(24).Render(m.Label())
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(formatMinutes(d.Of(m)))))
	}

	sound := successStyle.Render("on")
	if s.engine.Muted() {
		sound = warningStyle.Render("muted")
	}
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("Sound"), sound))

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case settingVolumeStart, settingVolumeEnd, settingVolumeAmbient:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return fmt.Sprintf("%d%%", int(f*100+0.5))
		}
	case settingDailyGoal:
		return v + " sessions"
	}
	return v
}

func formatVolume(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func validateVolume(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number between 0 and 1")
	}
	if f < 0 || f > 1 {
		return errors.New("volume must be between 0 and 1")
	}
	return nil
}

func validateGoal(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 48 {
		return errors.New("goal must be a whole number from 1 to 48")
	}
	return nil
}
