package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt   string        `json:"exported_at" yaml:"exported_at"`
	Today        jsonToday     `json:"today" yaml:"today"`
	ActiveTaskID string        `json:"active_task_id,omitempty" yaml:"active_task_id,omitempty"`
	Tasks        []jsonTask    `json:"tasks" yaml:"tasks"`
	History      []jsonSession `json:"history" yaml:"history"`
}

type jsonToday struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

type jsonTask struct {
	ID         string `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	Completed  bool   `json:"completed" yaml:"completed"`
	FocusCount int    `json:"focus_count" yaml:"focus_count"`
}

type jsonSession struct {
	ID          int64  `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	TaskID      string `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Task        string `json:"task,omitempty" yaml:"task,omitempty"`
	DurationSec int    `json:"duration_seconds" yaml:"duration_seconds"`
	Duration    string `json:"duration" yaml:"duration"`
	CompletedAt string `json:"completed_at" yaml:"completed_at"`
}

// document builds the structure shared by the JSON and YAML writers.
func document(d Data) jsonExport {
	doc := jsonExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Today:        jsonToday{Date: d.Today.Date, Count: d.Today.Count},
		ActiveTaskID: d.ActiveTaskID,
		Tasks:        []jsonTask{},
		History:      []jsonSession{},
	}

	for _, t := range d.Tasks {
		doc.Tasks = append(doc.Tasks, jsonTask{
			ID:         t.ID,
			Text:       t.Text,
			Completed:  t.Completed,
			FocusCount: t.FocusCount,
		})
	}

	for _, r := range d.History {
		doc.History = append(doc.History, jsonSession{
			ID:          r.ID,
			Date:        r.Date,
			TaskID:      r.TaskID,
			Task:        r.TaskText,
			DurationSec: r.Duration,
			Duration:    formatDuration(r.Duration),
			CompletedAt: r.CompletedAt.Local().Format(time.RFC3339),
		})
	}

	return doc
}

func ToJSON(d Data, path string) error {
	data, err := json.MarshalIndent(document(d), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
