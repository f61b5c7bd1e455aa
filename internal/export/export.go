// Package export writes the task list and focus history to files.
package export

import (
	"fmt"
	"time"

	"github.com/sadopc/hashira/internal/store"
)

// Data is everything an export file carries.
type Data struct {
	Today        store.DailyStats
	ActiveTaskID string
	Tasks        []store.Task
	History      []store.FocusRecord
}

// Load collects export data from s. today is the local YYYY-MM-DD date.
func Load(s *store.Store, today string) (Data, error) {
	history, err := s.ListFocus("", "")
	if err != nil {
		return Data{}, fmt.Errorf("load history: %w", err)
	}
	return Data{
		Today:        s.LoadStats(today),
		ActiveTaskID: s.LoadActiveTaskID(),
		Tasks:        s.LoadTasks(),
		History:      history,
	}, nil
}

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "yaml"}

// Write dispatches on format.
func Write(format string, d Data, path string) error {
	switch format {
	case "csv":
		return ToCSV(d, path)
	case "json":
		return ToJSON(d, path)
	case "yaml":
		return ToYAML(d, path)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Filename returns the default export file name for format on day.
func Filename(format string, day time.Time) string {
	return fmt.Sprintf("hashira-export-%s.%s", day.Format("2006-01-02"), format)
}

func formatDuration(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
