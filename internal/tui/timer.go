package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hashira/internal/focus"
)

// timerModel is the countdown view. All state lives in the engine; the model
// only translates keys into intents and renders.
type timerModel struct {
	engine *focus.Engine
	width  int
	height int
	goal   int
}

func newTimerModel(e *focus.Engine, goal int) timerModel {
	return timerModel{engine: e, goal: goal}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch {
	case key.Matches(km, keys.Focus):
		t.engine.SwitchMode(focus.ModeFocus)
	case key.Matches(km, keys.ShortBreak):
		t.engine.SwitchMode(focus.ModeShortBreak)
	case key.Matches(km, keys.LongBreak):
		t.engine.SwitchMode(focus.ModeLongBreak)
	case key.Matches(km, keys.StartPause):
		t.engine.StartPause()
	case key.Matches(km, keys.Reset):
		t.engine.Reset()
	case key.Matches(km, keys.Mute):
		t.engine.ToggleMute()
		if t.engine.Muted() {
			return t, statusCmd("Sound muted", false)
		}
		return t, statusCmd("Sound on", false)
	}
	return t, nil
}

func (t timerModel) view() string {
	w := t.width - 4
	e := t.engine
	mode := e.Mode()
	style := modeStyle(mode)

	title := titleStyle.Render("Breathing Timer")
	modes := t.renderModes()

	clock := timerStyle.Foreground(style.GetForeground()).Width(max(w-6, 10)).Render(formatClock(e.TimeLeft()))

	state := warningStyle.Render("paused")
	if e.Active() {
		state = successStyle.Render("running")
	}
	label := lipgloss.JoinHorizontal(lipgloss.Bottom, style.Render(mode.Label()), "  ", state)

	bar := t.renderBar(max(w-10, 10))

	bond := mutedStyle.Render("No active bond. Pick one in Bonds with a.")
	if task, ok := e.ActiveTask(); ok {
		bond = fmt.Sprintf("%s %s", accentStyle.Render("Bond:"), normalItemStyle.Render(task.Text))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		modes,
		"",
		clock,
		label,
		"",
		bar,
		"",
		bond,
		"",
		t.renderGoal(),
	)

	controls := mutedStyle.Render("f/s/l: mode  space: start/pause  r: reset  m: mute")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t timerModel) renderModes() string {
	var tabs []string
	for _, m := range focus.Modes {
		if m == t.engine.Mode() {
			tabs = append(tabs, activeTabStyle.Foreground(modeStyle(m).GetForeground()).BorderForeground(modeStyle(m).GetForeground()).Render(m.Label()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(m.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// renderBar draws how much of the current mode has elapsed.
func (t timerModel) renderBar(width int) string {
	total := t.engine.Duration()
	if total <= 0 {
		return ""
	}
	done := (total - t.engine.TimeLeft()) * width / total
	done = min(max(done, 0), width)
	style := modeStyle(t.engine.Mode())
	return style.Render(strings.Repeat("█", done)) + mutedStyle.Render(strings.Repeat("░", width-done))
}

func (t timerModel) renderGoal() string {
	count := t.engine.Stats().Count
	goal := max(t.goal, 1)

	var parts []string
	for i := 0; i < goal; i++ {
		if i < count {
			parts = append(parts, successStyle.Render("●"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	dots := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d today", count, goal))
	return dots + counter
}
