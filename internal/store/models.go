package store

import "time"

// Task is one entry of the bonds list. The JSON field names match the
// persisted slot format.
type Task struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Completed  bool   `json:"completed"`
	FocusCount int    `json:"focusCount"`
}

// DailyStats counts completed focus sessions for a single calendar day.
type DailyStats struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FocusRecord is one completed focus session in the history log.
type FocusRecord struct {
	ID          int64
	Date        string
	TaskID      string
	TaskText    string
	Duration    int // seconds
	CompletedAt time.Time
}

// DailyFocus is the number of focus sessions completed on Date.
type DailyFocus struct {
	Date  string
	Count int
}

type Setting struct {
	Key   string
	Value string
}
