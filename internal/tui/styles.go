package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hashira/internal/focus"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#E63946")
	colorSecondary = lipgloss.Color("#2A9D8F")
	colorAccent    = lipgloss.Color("#F4A261")
	colorMuted     = lipgloss.Color("#6C7086")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#E9C46A")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#CDD6F4")
	colorSubtle    = lipgloss.Color("#45475A")
	colorHighlight = lipgloss.Color("#89B4FA")
)

// modeColors tints the countdown per mode.
var modeColors = map[focus.Mode]lipgloss.Color{
	focus.ModeFocus:      colorPrimary,
	focus.ModeShortBreak: colorSecondary,
	focus.ModeLongBreak:  colorHighlight,
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Timer
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

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

	completedItemStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Strikethrough(true)
)

func modeStyle(m focus.Mode) lipgloss.Style {
	c, ok := modeColors[m]
	if !ok {
		c = colorPrimary
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
