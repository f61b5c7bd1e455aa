package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Slot keys. They keep the names of the original browser storage records so
// exported data stays recognisable.
const (
	StatsSlot      = "kms-focus-stats-v1"
	TasksSlot      = "kms-todo-list-v1"
	ActiveTaskSlot = "kms-todo-active-id-v1"
)

// readSlot returns the raw value stored under key. A missing slot is reported
// as ok == false with a nil error.
func (s *Store) readSlot(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) writeSlot(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

// LoadStats returns the stored daily stats for today. Missing, malformed or
// stale records (date != today) yield a fresh zero-count record.
func (s *Store) LoadStats(today string) DailyStats {
	fresh := DailyStats{Date: today}

	raw, ok, err := s.readSlot(StatsSlot)
	if err != nil || !ok {
		return fresh
	}
	var stats DailyStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return fresh
	}
	if stats.Date != today || stats.Count < 0 {
		return fresh
	}
	return stats
}

func (s *Store) SaveStats(stats DailyStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	return s.writeSlot(StatsSlot, string(data))
}

// storedTask mirrors Task but keeps FocusCount optional so records written
// before the field existed can be told apart from a real zero.
type storedTask struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Completed  bool   `json:"completed"`
	FocusCount *int   `json:"focusCount"`
}

// LoadTasks returns the stored task list. Entries without a focusCount are
// migrated to zero; malformed or missing data yields an empty list.
func (s *Store) LoadTasks() []Task {
	raw, ok, err := s.readSlot(TasksSlot)
	if err != nil || !ok {
		return []Task{}
	}
	return decodeTasks([]byte(raw))
}

func decodeTasks(data []byte) []Task {
	var stored []storedTask
	if err := json.Unmarshal(data, &stored); err != nil || stored == nil {
		return []Task{}
	}

	tasks := make([]Task, 0, len(stored))
	for _, st := range stored {
		t := Task{ID: st.ID, Text: st.Text, Completed: st.Completed}
		if st.FocusCount != nil {
			t.FocusCount = *st.FocusCount
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func (s *Store) SaveTasks(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	return s.writeSlot(TasksSlot, string(data))
}

// LoadActiveTaskID returns the stored active task id, or "" when none is set.
func (s *Store) LoadActiveTaskID() string {
	raw, ok, err := s.readSlot(ActiveTaskSlot)
	if err != nil || !ok {
		return ""
	}
	return raw
}

func (s *Store) SaveActiveTaskID(id string) error {
	return s.writeSlot(ActiveTaskSlot, id)
}
