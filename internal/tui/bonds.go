package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hashira/internal/focus"
	"github.com/sadopc/hashira/internal/store"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEdit
)

// bondsModel is the task list view.
type bondsModel struct {
	engine *focus.Engine
	width  int
	height int

	cursor int
	input  textinput.Model
	mode   inputMode

	confirming bool
	form       *huh.Form
	// Form value pointer (survives value copies)
	confirmClear *bool
}

func newBondsModel(e *focus.Engine) bondsModel {
	ti := textinput.New()
	ti.Placeholder = "What will you focus on?"
	ti.CharLimit = focus.MaxTaskText
	ti.Prompt = "› "

	confirm := false
	return bondsModel{
		engine:       e,
		input:        ti,
		confirmClear: &confirm,
	}
}

func (b *bondsModel) setSize(w, h int) {
	b.width = w
	b.height = h
	b.input.Width = max(w-16, 10)
}

// capturing reports whether the view owns every key press.
func (b bondsModel) capturing() bool {
	return b.mode != inputNone || b.confirming
}

func (b bondsModel) update(msg tea.Msg) (bondsModel, tea.Cmd) {
	if b.confirming && b.form != nil {
		return b.updateConfirm(msg)
	}
	if b.mode != inputNone {
		return b.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	tasks := b.engine.Tasks()
	switch {
	case key.Matches(km, keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}
	case key.Matches(km, keys.Down):
		if b.cursor < len(tasks)-1 {
			b.cursor++
		}
	case key.Matches(km, keys.New):
		b.mode = inputAdd
		b.input.SetValue("")
		return b, b.input.Focus()
	case key.Matches(km, keys.Enter):
		if task, ok := b.selected(tasks); ok && b.engine.StartEdit(task.ID) {
			b.mode = inputEdit
			b.input.SetValue(task.Text)
			b.input.CursorEnd()
			return b, b.input.Focus()
		}
	case key.Matches(km, keys.Toggle):
		if task, ok := b.selected(tasks); ok {
			b.engine.ToggleTask(task.ID)
		}
	case key.Matches(km, keys.Activate):
		task, ok := b.selected(tasks)
		if !ok {
			return b, nil
		}
		if task.Completed {
			return b, statusCmd("Completed bonds cannot be active", true)
		}
		b.engine.SetActiveTask(task.ID)
		return b, statusCmd("Active bond: "+task.Text, false)
	case key.Matches(km, keys.Delete):
		if task, ok := b.selected(tasks); ok {
			b.engine.DeleteTask(task.ID)
			b.clampCursor()
		}
	case key.Matches(km, keys.Clear):
		return b.showConfirm()
	}
	return b, nil
}

func (b bondsModel) selected(tasks []store.Task) (store.Task, bool) {
	if b.cursor < 0 || b.cursor >= len(tasks) {
		return store.Task{}, false
	}
	return tasks[b.cursor], true
}

func (b *bondsModel) clampCursor() {
	n := len(b.engine.Tasks())
	if b.cursor >= n {
		b.cursor = max(0, n-1)
	}
}

func (b bondsModel) updateInput(msg tea.Msg) (bondsModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			b.submit()
			return b, nil
		case tea.KeyEsc:
			if b.mode == inputEdit {
				b.engine.CancelEdit()
			}
			b.closeInput()
			return b, nil
		case tea.KeyUp, tea.KeyDown:
			// Leaving the row being edited commits it.
			if b.mode == inputEdit {
				b.submit()
				if km.Type == tea.KeyUp && b.cursor > 0 {
					b.cursor--
				} else if km.Type == tea.KeyDown && b.cursor < len(b.engine.Tasks())-1 {
					b.cursor++
				}
				return b, nil
			}
		}
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *bondsModel) submit() {
	switch b.mode {
	case inputAdd:
		if _, ok := b.engine.AddTask(b.input.Value()); ok {
			b.cursor = len(b.engine.Tasks()) - 1
		}
	case inputEdit:
		b.engine.SubmitEdit(b.engine.EditingID(), b.input.Value())
		b.clampCursor()
	}
	b.closeInput()
}

func (b *bondsModel) closeInput() {
	b.mode = inputNone
	b.input.Blur()
	b.input.SetValue("")
}

func (b bondsModel) completedCount() int {
	n := 0
	for _, t := range b.engine.Tasks() {
		if t.Completed {
			n++
		}
	}
	return n
}

func (b bondsModel) showConfirm() (bondsModel, tea.Cmd) {
	n := b.completedCount()
	if n == 0 {
		return b, statusCmd("No completed bonds to clear", false)
	}
	*b.confirmClear = false

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear %d completed bond(s)?", n)).
				Affirmative("Clear").
				Negative("Keep").
				Value(b.confirmClear),
		),
	).WithShowHelp(true)

	b.confirming = true
	return b, b.form.Init()
}

func (b bondsModel) updateConfirm(msg tea.Msg) (bondsModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		b.confirming = false
		b.form = nil
		return b, nil
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	switch b.form.State {
	case huh.StateCompleted:
		b.confirming = false
		b.form = nil
		if !*b.confirmClear {
			return b, nil
		}
		n := b.engine.ClearCompleted()
		b.clampCursor()
		return b, statusCmd(fmt.Sprintf("Cleared %d completed bond(s)", n), false)
	case huh.StateAborted:
		b.confirming = false
		b.form = nil
		return b, nil
	}
	return b, cmd
}

func (b bondsModel) view() string {
	w := b.width - 4

	if b.confirming && b.form != nil {
		title := titleStyle.Render("Clear Completed")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", b.form.View()),
		)
	}

	tasks := b.engine.Tasks()
	title := titleStyle.Render(fmt.Sprintf("Bonds  %s", mutedStyle.Render(fmt.Sprintf("%d open, %d done", len(tasks)-b.completedCount(), b.completedCount()))))

	var rows []string
	rows = append(rows, title, "")

	if len(tasks) == 0 && b.mode != inputAdd {
		rows = append(rows, mutedStyle.Render("No bonds yet. Press n to add one."))
	}

	activeID := b.engine.ActiveTaskID()
	editingID := b.engine.EditingID()
	for i, task := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == b.cursor && b.mode != inputAdd {
			cursor = "> "
			style = selectedItemStyle
		}

		check := "[ ]"
		if task.Completed {
			check = successStyle.Render("[x]")
			if i != b.cursor {
				style = completedItemStyle
			}
		}

		text := style.Render(task.Text)
		if b.mode == inputEdit && task.ID == editingID {
			text = b.input.View()
		}

		row := fmt.Sprintf("%s%s %s", cursor, check, text)
		if task.FocusCount > 0 {
			row += accentStyle.Render(fmt.Sprintf("  ◆ %d", task.FocusCount))
		}
		if task.ID == activeID {
			row += highlightStyle.Render("  ▶ active")
		}
		rows = append(rows, row)
	}

	if b.mode == inputAdd {
		rows = append(rows, "", b.input.View())
	}

	rows = append(rows, "")
	hint := "  n: new  enter: edit  x: done  a: set active  d: delete  c: clear done"
	if b.mode != inputNone {
		hint = "  enter: save  esc: cancel"
	}
	rows = append(rows, mutedStyle.Render(hint))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
