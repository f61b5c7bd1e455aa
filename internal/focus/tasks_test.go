package focus

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/store"
)

func newTestTaskStore(t *testing.T, repo TaskRepository, tasks []store.Task, active string) *TaskStore {
	t.Helper()
	ts := NewTaskStore(repo, tasks, active, zerolog.Nop())
	n := 0
	ts.newID = func() string {
		n++
		return "t" + string(rune('0'+n))
	}
	return ts
}

func TestAddTask(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, nil, "")

	task, ok := ts.Add("  slay the hand demon  ")
	if !ok {
		t.Fatal("add should succeed")
	}
	if task.ID != "t1" || task.Text != "slay the hand demon" || task.Completed || task.FocusCount != 0 {
		t.Fatalf("unexpected task: %+v", task)
	}

	stored := repo.LoadTasks()
	if len(stored) != 1 || stored[0] != task {
		t.Fatalf("task not persisted: %+v", stored)
	}
}

func TestAddRejectsBlank(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, nil, "")

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, ok := ts.Add(text); ok {
			t.Fatalf("add(%q) should be rejected", text)
		}
	}
	if ts.Len() != 0 || repo.taskWrites != 0 {
		t.Fatalf("rejected add changed state: len=%d writes=%d", ts.Len(), repo.taskWrites)
	}
}

func TestAddTruncatesLongText(t *testing.T) {
	ts := newTestTaskStore(t, newCountingRepo(t), nil, "")
	task, _ := ts.Add(strings.Repeat("水", 80))
	if n := len([]rune(task.Text)); n != MaxTaskText {
		t.Fatalf("text has %d runes, want %d", n, MaxTaskText)
	}
}

func TestIDsAreUnique(t *testing.T) {
	ts := NewTaskStore(newCountingRepo(t), nil, "", zerolog.Nop())
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		task, _ := ts.Add("task")
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestToggleCompletedClearsActive(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, nil, "")
	a, _ := ts.Add("a")
	ts.SetActive(a.ID)

	ts.ToggleCompleted(a.ID)
	if got, _ := ts.Task(a.ID); !got.Completed {
		t.Fatal("task should be completed")
	}
	if ts.ActiveID() != "" {
		t.Fatal("completing the active task should clear it")
	}
	if repo.LoadActiveTaskID() != "" {
		t.Fatal("cleared active id not persisted")
	}

	ts.ToggleCompleted(a.ID)
	if got, _ := ts.Task(a.ID); got.Completed {
		t.Fatal("second toggle should reopen the task")
	}
}

func TestSetActiveSameIDIsNoop(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, nil, "")
	a, _ := ts.Add("a")

	ts.SetActive(a.ID)
	writes := repo.activeWrites
	ts.SetActive(a.ID)
	if repo.activeWrites != writes {
		t.Fatalf("re-selecting the active task wrote %d times", repo.activeWrites-writes)
	}
	if repo.LoadActiveTaskID() != a.ID {
		t.Fatal("active id not persisted")
	}
}

func TestSetActiveReplacesPrevious(t *testing.T) {
	ts := newTestTaskStore(t, newCountingRepo(t), nil, "")
	a, _ := ts.Add("a")
	b, _ := ts.Add("b")
	ts.SetActive(a.ID)
	ts.SetActive(b.ID)
	if ts.ActiveID() != b.ID {
		t.Fatalf("active = %q, want %q", ts.ActiveID(), b.ID)
	}
}

func TestSetActiveUnknownIsCleared(t *testing.T) {
	ts := newTestTaskStore(t, newCountingRepo(t), nil, "")
	ts.SetActive("ghost")
	if ts.ActiveID() != "" {
		t.Fatal("dangling active reference should be cleared")
	}
}

func TestDeleteActiveAndEditing(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, nil, "")
	a, _ := ts.Add("a")
	b, _ := ts.Add("b")
	ts.SetActive(a.ID)
	ts.StartEdit(a.ID)

	ts.Delete(a.ID)
	if _, ok := ts.Task(a.ID); ok {
		t.Fatal("task should be gone")
	}
	if ts.ActiveID() != "" || ts.EditingID() != "" {
		t.Fatalf("active=%q editing=%q, want both empty", ts.ActiveID(), ts.EditingID())
	}
	stored := repo.LoadTasks()
	if len(stored) != 1 || stored[0].ID != b.ID {
		t.Fatalf("unexpected stored tasks: %+v", stored)
	}
}

func TestClearCompleted(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, []store.Task{
		{ID: "a", Text: "a", Completed: true},
		{ID: "b", Text: "b"},
		{ID: "c", Text: "c", Completed: true},
	}, "b")

	writes := repo.taskWrites
	if n := ts.ClearCompleted(); n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	if repo.taskWrites != writes+1 {
		t.Fatalf("clear completed should write once, wrote %d", repo.taskWrites-writes)
	}
	if ts.Len() != 1 || ts.ActiveID() != "b" {
		t.Fatalf("len=%d active=%q", ts.Len(), ts.ActiveID())
	}
}

func TestSubmitEditRenamesInPlace(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, []store.Task{
		{ID: "a", Text: "old", Completed: true, FocusCount: 3},
		{ID: "b", Text: "next"},
	}, "")

	ts.StartEdit("a")
	ts.SubmitEdit("a", "  new name ")
	got, _ := ts.Task("a")
	want := store.Task{ID: "a", Text: "new name", Completed: true, FocusCount: 3}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if ts.Tasks()[0].ID != "a" {
		t.Fatal("rename must keep position")
	}
	if ts.EditingID() != "" {
		t.Fatal("submit should end editing")
	}
}

func TestSubmitEditBlankDeletes(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, []store.Task{{ID: "a", Text: "a"}, {ID: "b", Text: "b"}}, "a")

	ts.StartEdit("a")
	ts.SubmitEdit("a", "   ")
	if _, ok := ts.Task("a"); ok {
		t.Fatal("blank edit should delete the task")
	}
	if ts.ActiveID() != "" || ts.EditingID() != "" {
		t.Fatal("active and editing should be cleared")
	}
	for _, task := range repo.LoadTasks() {
		if task.Text == "" {
			t.Fatal("empty task persisted")
		}
	}
}

func TestCancelEdit(t *testing.T) {
	ts := newTestTaskStore(t, newCountingRepo(t), []store.Task{{ID: "a", Text: "a"}}, "")
	if !ts.StartEdit("a") {
		t.Fatal("start edit should succeed")
	}
	ts.CancelEdit()
	if ts.EditingID() != "" {
		t.Fatal("cancel should clear editing")
	}
	if got, _ := ts.Task("a"); got.Text != "a" {
		t.Fatal("cancel must not change the text")
	}
	if ts.StartEdit("missing") {
		t.Fatal("editing a missing task should fail")
	}
}

func TestLoadClearsStaleActive(t *testing.T) {
	repo := newCountingRepo(t)
	repo.SaveActiveTaskID("done")

	ts := newTestTaskStore(t, repo, []store.Task{{ID: "done", Text: "x", Completed: true}}, "done")
	if ts.ActiveID() != "" {
		t.Fatal("active reference to a completed task should be cleared")
	}
	if repo.LoadActiveTaskID() != "" {
		t.Fatal("cleared reference should be persisted")
	}
}

func TestCreditActive(t *testing.T) {
	repo := newCountingRepo(t)
	ts := newTestTaskStore(t, repo, []store.Task{{ID: "a", Text: "a", FocusCount: 1}}, "a")

	got, ok := ts.CreditActive()
	if !ok || got.FocusCount != 2 {
		t.Fatalf("credit = %+v, %v", got, ok)
	}
	if ts.ActiveID() != "" {
		t.Fatal("credit should clear the active task")
	}
	if _, ok := ts.CreditActive(); ok {
		t.Fatal("nothing to credit without an active task")
	}
}
