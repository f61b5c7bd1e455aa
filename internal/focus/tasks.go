package focus

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/store"
)

// MaxTaskText is the longest task text kept, in runes.
const MaxTaskText = 50

// TaskRepository persists the task list and the active task reference.
type TaskRepository interface {
	SaveTasks(tasks []store.Task) error
	SaveActiveTaskID(id string) error
}

// TaskStore is the ordered bonds list plus the single active task reference
// and the edit cursor. Every mutation is written through synchronously.
type TaskStore struct {
	tasks     []store.Task
	activeID  string
	editingID string

	repo   TaskRepository
	newID  func() string
	logger zerolog.Logger
}

// NewTaskStore wraps tasks loaded from storage. A stale active reference is
// cleared immediately.
func NewTaskStore(repo TaskRepository, tasks []store.Task, activeID string, logger zerolog.Logger) *TaskStore {
	if tasks == nil {
		tasks = []store.Task{}
	}
	ts := &TaskStore{
		tasks:    tasks,
		activeID: activeID,
		repo:     repo,
		newID:    uuid.NewString,
		logger:   logger.With().Str("component", "tasks").Logger(),
	}
	ts.reconcile()
	return ts
}

// Tasks returns a copy of the list in display order.
func (ts *TaskStore) Tasks() []store.Task {
	out := make([]store.Task, len(ts.tasks))
	copy(out, ts.tasks)
	return out
}

func (ts *TaskStore) Len() int { return len(ts.tasks) }

func (ts *TaskStore) Task(id string) (store.Task, bool) {
	i := ts.index(id)
	if i < 0 {
		return store.Task{}, false
	}
	return ts.tasks[i], true
}

func (ts *TaskStore) ActiveID() string  { return ts.activeID }
func (ts *TaskStore) EditingID() string { return ts.editingID }

// Add appends a new task. Blank text is rejected.
func (ts *TaskStore) Add(text string) (store.Task, bool) {
	text = clampText(strings.TrimSpace(text))
	if text == "" {
		return store.Task{}, false
	}
	t := store.Task{ID: ts.newID(), Text: text}
	ts.tasks = append(ts.tasks, t)
	ts.saveTasks()
	ts.reconcile()
	return t, true
}

// ToggleCompleted flips the completed flag. Completing the active task clears
// the active reference.
func (ts *TaskStore) ToggleCompleted(id string) {
	i := ts.index(id)
	if i < 0 {
		return
	}
	ts.tasks[i].Completed = !ts.tasks[i].Completed
	ts.saveTasks()
	if ts.tasks[i].Completed && ts.activeID == id {
		ts.setActiveID("")
	}
	ts.reconcile()
}

// SetActive makes id the active task. Re-selecting the active task is a
// no-op and writes nothing.
func (ts *TaskStore) SetActive(id string) {
	if ts.activeID == id {
		return
	}
	ts.setActiveID(id)
	ts.reconcile()
}

// Delete removes the task, dropping the active reference and the edit cursor
// if they pointed at it.
func (ts *TaskStore) Delete(id string) {
	i := ts.index(id)
	if i < 0 {
		return
	}
	ts.tasks = append(ts.tasks[:i], ts.tasks[i+1:]...)
	ts.saveTasks()
	if ts.activeID == id {
		ts.setActiveID("")
	}
	if ts.editingID == id {
		ts.editingID = ""
	}
	ts.reconcile()
}

// ClearCompleted removes every completed task in one write and returns how
// many were removed.
func (ts *TaskStore) ClearCompleted() int {
	kept := make([]store.Task, 0, len(ts.tasks))
	for _, t := range ts.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(ts.tasks) - len(kept)
	ts.tasks = kept
	ts.saveTasks()
	if ts.activeID != "" && ts.index(ts.activeID) < 0 {
		ts.setActiveID("")
	}
	if ts.editingID != "" && ts.index(ts.editingID) < 0 {
		ts.editingID = ""
	}
	ts.reconcile()
	return removed
}

// StartEdit moves the edit cursor to id.
func (ts *TaskStore) StartEdit(id string) bool {
	if ts.index(id) < 0 {
		return false
	}
	ts.editingID = id
	return true
}

// SubmitEdit renames the task in place. Text that trims to nothing deletes
// the task instead.
func (ts *TaskStore) SubmitEdit(id, text string) {
	defer ts.CancelEdit()

	text = clampText(strings.TrimSpace(text))
	if text == "" {
		ts.Delete(id)
		return
	}
	i := ts.index(id)
	if i < 0 {
		return
	}
	ts.tasks[i].Text = text
	ts.saveTasks()
	ts.reconcile()
}

func (ts *TaskStore) CancelEdit() {
	ts.editingID = ""
}

// CreditActive adds one focus session to the active task and clears the
// active reference. It reports the credited task, if any.
func (ts *TaskStore) CreditActive() (store.Task, bool) {
	if ts.activeID == "" {
		return store.Task{}, false
	}
	i := ts.index(ts.activeID)
	if i < 0 {
		ts.setActiveID("")
		return store.Task{}, false
	}
	ts.tasks[i].FocusCount++
	ts.saveTasks()
	credited := ts.tasks[i]
	ts.setActiveID("")
	return credited, true
}

// reconcile clears the active reference when it no longer points at an
// existing, uncompleted task.
func (ts *TaskStore) reconcile() {
	if ts.activeID == "" {
		return
	}
	i := ts.index(ts.activeID)
	if i < 0 || ts.tasks[i].Completed {
		ts.setActiveID("")
	}
}

func (ts *TaskStore) setActiveID(id string) {
	ts.activeID = id
	if err := ts.repo.SaveActiveTaskID(id); err != nil {
		ts.logger.Error().Err(err).Msg("save active task")
	}
}

func (ts *TaskStore) saveTasks() {
	if err := ts.repo.SaveTasks(ts.tasks); err != nil {
		ts.logger.Error().Err(err).Int("tasks", len(ts.tasks)).Msg("save tasks")
	}
}

func (ts *TaskStore) index(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range ts.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func clampText(s string) string {
	r := []rune(s)
	if len(r) > MaxTaskText {
		return strings.TrimSpace(string(r[:MaxTaskText]))
	}
	return s
}
