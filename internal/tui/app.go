// Package tui is the terminal front end: a Bubble Tea program with timer,
// bonds, reports and settings views over a focus engine.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/export"
	"github.com/sadopc/hashira/internal/focus"
	"github.com/sadopc/hashira/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	engine *focus.Engine
	store  *store.Store
	logger zerolog.Logger
	now    func() time.Time
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	// armedGen is the clock generation the live tick chain belongs to.
	armedGen uint64
	goal     int

	timer    timerModel
	bonds    bondsModel
	reports  reportsModel
	settings settingsModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(e *focus.Engine, s *store.Store, logger zerolog.Logger) App {
	h := help.New()
	h.ShowAll = false

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	goal := s.SettingInt(settingDailyGoal, 8)

	return App{
		engine:     e,
		store:      s,
		logger:     logger.With().Str("component", "tui").Logger(),
		now:        time.Now,
		activeView: viewTimer,
		exportDir:  home,
		goal:       goal,
		timer:      newTimerModel(e, goal),
		bonds:      newBondsModel(e),
		reports:    newReportsModel(s, time.Now, goal),
		settings:   newSettingsModel(s, e),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.settings.refresh(),
		a.reports.refresh(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.update(msg)
	next := model.(App)
	armCmd := next.arm()
	return next, tea.Batch(cmd, armCmd)
}

// arm starts a tick chain when the clock runs under a generation nothing is
// ticking for yet. Chains of older generations die on their next tick.
func (a *App) arm() tea.Cmd {
	gen := a.engine.Generation()
	if !a.engine.Active() || gen == a.armedGen {
		return nil
	}
	a.armedGen = gen
	return tickCmd(gen)
}

func (a App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.bonds.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
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
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewBonds
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		return a.handleTick(msg)

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		return a, nil

	case settingsSavedMsg:
		a.goal = msg.goal
		a.timer.goal = msg.goal
		a.reports.goal = msg.goal
		a.status = "Settings saved"
		a.isErr = false
		return a, a.reports.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	applied, done := a.engine.Tick(msg.gen)
	if !applied {
		return a, nil
	}

	var cmds []tea.Cmd
	if a.engine.Active() {
		a.armedGen = a.engine.Generation()
		cmds = append(cmds, tickCmd(a.armedGen))
	}

	if done != nil {
		a.status = fmt.Sprintf("Focus complete · %d/%d today", done.Count, a.goal)
		if done.TaskText != "" {
			a.status += fmt.Sprintf(" · %s ◆ %d", done.TaskText, done.FocusCount)
		}
		a.isErr = false
		cmds = append(cmds, a.reports.refresh())
	}
	return a, tea.Batch(cmds...)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewBonds:
		a.bonds, cmd = a.bonds.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewBonds:
		return a.bonds.capturing()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
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
	case viewTimer:
		content = a.timer.view()
	case viewBonds:
		content = a.bonds.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
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

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("hashira")

	stats := a.engine.Stats()
	today := mutedStyle.Render(fmt.Sprintf(" %d/%d today", stats.Count, a.goal))
	if stats.Count >= a.goal {
		today = successStyle.Render(fmt.Sprintf(" %d/%d today", stats.Count, a.goal))
	}
	sound := mutedStyle.Render(" ♪")
	if a.engine.Muted() {
		sound = warningStyle.Render(" muted")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, title, today, sound)

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Countdown indicator when the timer view is not showing it.
	timerInfo := ""
	if a.activeView != viewTimer {
		mode := a.engine.Mode()
		if a.engine.Active() {
			timerInfo = modeStyle(mode).Render(" ● " + formatClock(a.engine.TimeLeft()))
		} else if a.engine.TimeLeft() != a.engine.Duration() {
			timerInfo = warningStyle.Render(" ⏸ " + formatClock(a.engine.TimeLeft()))
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title, "")
	for i, f := range export.Formats {
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

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format string) tea.Cmd {
	s, dir, now, logger := a.store, a.exportDir, a.now(), a.logger
	return func() tea.Msg {
		data, err := export.Load(s, now.Format(dateLayout))
		if err != nil {
			logger.Error().Err(err).Msg("export load")
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		path := filepath.Join(dir, export.Filename(format, now))
		if err := export.Write(format, data, path); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("export write")
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		logger.Info().Str("path", path).Str("format", format).Msg("exported")
		return exportDoneMsg{path: path}
	}
}
