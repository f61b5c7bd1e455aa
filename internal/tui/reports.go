package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hashira/internal/store"
)

type reportsModel struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int
	goal   int

	counts   []store.DailyFocus
	sessions []store.FocusRecord
	offset   int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newReportsModel(s *store.Store, now func() time.Time, goal int) reportsModel {
	return reportsModel{
		store: s,
		now:   now,
		goal:  goal,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	counts   []store.DailyFocus
	sessions []store.FocusRecord
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		f, t := from.Format(dateLayout), to.Format(dateLayout)
		counts, err := r.store.DailyFocusCounts(f, t)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Reports error: %v", err), isError: true}
		}
		sessions, err := r.store.ListFocus(f, t)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Reports error: %v", err), isError: true}
		}
		return reportsDataMsg{counts: counts, sessions: sessions}
	}
}

// dateRange returns the local-date window [from, to) shown by the chart.
func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1-7*r.offset)
	return end.AddDate(0, 0, -7), end
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.counts = msg.counts
		r.sessions = msg.sessions
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r reportsModel) countOn(date string) int {
	for _, c := range r.counts {
		if c.Date == date {
			return c.Count
		}
	}
	return 0
}

func (r *reportsModel) buildChart() {
	chartWidth := max(r.width-8, 20)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()
	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		n := r.countOn(d.Format(dateLayout))
		color := colorPrimary
		if r.goal > 0 && n >= r.goal {
			color = colorSuccess
		}
		if n == 0 {
			color = colorSubtle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "focus",
				Value: float64(n),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) total() int {
	n := 0
	for _, c := range r.counts {
		n += c.Count
	}
	return n
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s - %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Reports"), "  ", dateLabel)

	summary := fmt.Sprintf("  %s sessions  %s focused  goal %d/day",
		highlightStyle.Render(fmt.Sprintf("%d", r.total())),
		highlightStyle.Render(formatMinutes(r.focusedSeconds())),
		r.goal,
	)

	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", summary, "", r.renderBondTable(w), "", nav,
		),
	)
}

func (r reportsModel) focusedSeconds() int {
	n := 0
	for _, s := range r.sessions {
		n += s.Duration
	}
	return n
}

type bondTotal struct {
	text  string
	count int
}

// bondTotals groups the window's sessions by the bond they credited.
func (r reportsModel) bondTotals() []bondTotal {
	byText := map[string]int{}
	for _, s := range r.sessions {
		text := s.TaskText
		if text == "" {
			text = "(no bond)"
		}
		byText[text]++
	}
	out := make([]bondTotal, 0, len(byText))
	for text, n := range byText {
		out = append(out, bondTotal{text: text, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].text < out[j].text
	})
	return out
}

func (r reportsModel) renderBondTable(w int) string {
	totals := r.bondTotals()
	if len(totals) == 0 {
		return mutedStyle.Render("  No focus sessions in this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-32s %8s", "Bond", "Sessions")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 42))))
	for _, t := range totals {
		rows = append(rows, fmt.Sprintf("  %-32s %8d", t.text, t.count))
	}
	return strings.Join(rows, "\n")
}
