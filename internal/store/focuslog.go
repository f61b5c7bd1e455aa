package store

import (
	"fmt"
	"time"
)

// LogFocus appends a completed focus session to the history log.
func (s *Store) LogFocus(rec FocusRecord) (*FocusRecord, error) {
	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO focus_log (date, task_id, task_text, duration, completed_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Date, rec.TaskID, rec.TaskText, rec.Duration, completedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("log focus: %w", err)
	}
	id, _ := res.LastInsertId()
	rec.ID = id
	rec.CompletedAt = completedAt.UTC().Truncate(time.Second)
	return &rec, nil
}

// ListFocus returns history rows with from <= date < to (YYYY-MM-DD strings),
// newest first. Empty bounds are open.
func (s *Store) ListFocus(from, to string) ([]FocusRecord, error) {
	query := `SELECT id, date, task_id, task_text, duration, completed_at FROM focus_log WHERE 1=1`
	var args []any
	if from != "" {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date < ?`
		args = append(args, to)
	}
	query += ` ORDER BY completed_at DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list focus: %w", err)
	}
	defer rows.Close()

	var records []FocusRecord
	for rows.Next() {
		var r FocusRecord
		var completedAt string
		if err := rows.Scan(&r.ID, &r.Date, &r.TaskID, &r.TaskText, &r.Duration, &completedAt); err != nil {
			return nil, err
		}
		r.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// DailyFocusCounts aggregates completed sessions per day in [from, to).
func (s *Store) DailyFocusCounts(from, to string) ([]DailyFocus, error) {
	rows, err := s.db.Query(`
		SELECT date, COUNT(*)
		FROM focus_log
		WHERE date >= ? AND date < ?
		GROUP BY date
		ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily focus counts: %w", err)
	}
	defer rows.Close()

	var out []DailyFocus
	for rows.Next() {
		var d DailyFocus
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
