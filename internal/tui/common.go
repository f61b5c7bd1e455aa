package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewBonds
	viewReports
	viewSettings
)

var viewNames = []string{"Timer", "Bonds", "Reports", "Settings"}

const dateLayout = "2006-01-02"

// --- Messages ---

// tickMsg is one countdown second, tagged with the clock generation that
// armed it. Ticks from an older generation are dropped.
type tickMsg struct {
	gen uint64
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type settingsSavedMsg struct {
	goal int
}

// --- Helpers ---

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// formatClock renders seconds as MM:SS.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatMinutes(secs int) string {
	if secs%60 == 0 {
		return fmt.Sprintf("%d min", secs/60)
	}
	return fmt.Sprintf("%d min %d s", secs/60, secs%60)
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
