package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"Kind", "ID", "Date", "Text", "Completed", "Active", "Focus Count", "Duration (s)", "Duration", "Completed At"}

// ToCSV writes one row per task followed by one row per focus session.
func ToCSV(d Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range d.Tasks {
		row := []string{
			"task",
			t.ID,
			"",
			t.Text,
			strconv.FormatBool(t.Completed),
			strconv.FormatBool(t.ID == d.ActiveTaskID),
			strconv.Itoa(t.FocusCount),
			"",
			"",
			"",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, r := range d.History {
		row := []string{
			"focus",
			strconv.FormatInt(r.ID, 10),
			r.Date,
			r.TaskText,
			"",
			"",
			"",
			strconv.Itoa(r.Duration),
			formatDuration(r.Duration),
			r.CompletedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
