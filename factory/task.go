/*
Package factory converts stored household JSON into recurrence records.

PURPOSE:
  Tasks are persisted in the loose shape the household front end writes:
  string frequency tags, a category that may be a string or a list, and
  per-cycle reschedules keyed by period key. The factory decodes that shape
  once, at the boundary, so the engine only ever sees recurrence.Frequency.

JSON SCHEMA:
  {
    "id": "bw3",
    "task": "Vacuum bedroom",
    "cat": "Bedroom",                // or ["Bedroom", "Floors"]
    "freq": "biweekly",              // see chores/presets.go for tags
    "dow": 5,
    "weekOffset": 1,
    "nudgeDays": 14,
    "onceDate": "2026-03-01",
    "lastDone": "2026-02-07",
    "reschedules": {"2026-02-20": "2026-02-21", "__anchor": "2026-03-02"},
    "tod": "morning"
  }

TOTALITY:
  Only syntactically broken JSON is an error. Corrupt dates decode as
  absent, reschedules with a corrupt target are dropped, unknown tags fall
  back to a 7-day custom interval, and out-of-range weekday and offset
  values are folded into range.

USAGE:
  factory := NewTaskFactory()
  tasks, err := factory.ParseSchedule(data)   // array or id-keyed object
  data, err := factory.EncodeSchedule(tasks)

SEE ALSO:
  - household.go: completion log and whole-household export
  - chores/presets.go: tag table
  - store/sqlite/sqlite.go: stores records in this shape
*/
package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TaskJSON is the stored representation of a task.
type TaskJSON struct {
	ID          string            `json:"id"`
	Task        string            `json:"task"`
	Cat         json.RawMessage   `json:"cat,omitempty"` // string or []string
	Freq        string            `json:"freq"`
	Dow         *int              `json:"dow,omitempty"`
	WeekOffset  *int              `json:"weekOffset,omitempty"`
	NudgeDays   *int              `json:"nudgeDays,omitempty"`
	OnceDate    string            `json:"onceDate,omitempty"`
	LastDone    string            `json:"lastDone,omitempty"`
	Reschedules map[string]string `json:"reschedules,omitempty"`
	Tod         string            `json:"tod,omitempty"`
}

// =============================================================================
// TASK FACTORY
// =============================================================================

// TaskFactory converts between TaskJSON and recurrence.Task.
type TaskFactory struct{}

// NewTaskFactory creates a new task factory.
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// ParseTask parses a single task record.
func (f *TaskFactory) ParseTask(data []byte) (recurrence.Task, error) {
	var tj TaskJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return recurrence.Task{}, fmt.Errorf("failed to parse task JSON: %w", err)
	}
	return f.FromJSON(tj), nil
}

// ParseSchedule parses either a JSON array of tasks or an object keyed by
// task id. Object entries without an id take their key; object schedules
// come back sorted by id.
func (f *TaskFactory) ParseSchedule(data []byte) ([]recurrence.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []TaskJSON
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
		}
		tasks := make([]recurrence.Task, 0, len(list))
		for _, tj := range list {
			tasks = append(tasks, f.FromJSON(tj))
		}
		return tasks, nil
	}

	var byID map[string]TaskJSON
	if err := json.Unmarshal(trimmed, &byID); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}
	keys := make([]string, 0, len(byID))
	for k := range byID {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tasks := make([]recurrence.Task, 0, len(keys))
	for _, k := range keys {
		tj := byID[k]
		if tj.ID == "" {
			tj.ID = k
		}
		tasks = append(tasks, f.FromJSON(tj))
	}
	return tasks, nil
}

// FromJSON converts TaskJSON to recurrence.Task.
func (f *TaskFactory) FromJSON(tj TaskJSON) recurrence.Task {
	onceDate, _ := recurrence.ParseDate(tj.OnceDate)
	lastDone, _ := recurrence.ParseDate(tj.LastDone)

	freq := chores.PresetFrequency(chores.Tag(tj.Freq), chores.FrequencyFields{
		DayOfWeek:  tj.Dow,
		WeekOffset: tj.WeekOffset,
		NudgeDays:  tj.NudgeDays,
		OnceDate:   onceDate,
	})

	task := recurrence.Task{
		ID:          recurrence.TaskID(tj.ID),
		Description: tj.Task,
		Categories:  chores.NormalizeCategories(parseCategories(tj.Cat)),
		Frequency:   freq.Normalized(),
		LastDone:    lastDone,
		TimeOfDay:   tj.Tod,
	}

	for key, target := range tj.Reschedules {
		d, ok := recurrence.ParseDate(target)
		if !ok {
			continue
		}
		task = recurrence.WithOverride(task, key, d)
	}
	return task
}

// parseCategories accepts a string, a list of strings, or nothing.
func parseCategories(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}

// =============================================================================
// ENCODING
// =============================================================================

// ToJSON converts a task to its stored shape. Fields the frequency does not
// read are omitted.
func (f *TaskFactory) ToJSON(t recurrence.Task) TaskJSON {
	tj := TaskJSON{
		ID:       string(t.ID),
		Task:     t.Description,
		Cat:      encodeCategories(chores.NormalizeCategories(t.Categories)),
		Freq:     string(chores.FrequencyTag(t.Frequency)),
		LastDone: t.LastDone.String(),
		Tod:      t.TimeOfDay,
	}

	fr := t.Frequency
	switch {
	case chores.UsesWeekday(fr):
		dow, offset := int(fr.Weekday), fr.WeekOffset
		tj.Dow, tj.WeekOffset = &dow, &offset
	case chores.UsesNudge(fr):
		nudge := fr.NudgeDays
		tj.NudgeDays = &nudge
	case fr.Kind == recurrence.KindOnce:
		tj.OnceDate = fr.Date.String()
	}

	if len(t.Overrides) > 0 {
		tj.Reschedules = make(map[string]string, len(t.Overrides))
		for k, d := range t.Overrides {
			if !d.IsZero() {
				tj.Reschedules[k] = d.String()
			}
		}
	}
	return tj
}

// EncodeTask marshals one task.
func (f *TaskFactory) EncodeTask(t recurrence.Task) ([]byte, error) {
	return json.Marshal(f.ToJSON(t))
}

// EncodeSchedule marshals tasks as a JSON array in schedule order.
func (f *TaskFactory) EncodeSchedule(tasks []recurrence.Task) ([]byte, error) {
	out := make([]TaskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, f.ToJSON(t))
	}
	return json.MarshalIndent(out, "", "  ")
}

// A single category is written as a plain string so older readers keep working.
func encodeCategories(cats []string) json.RawMessage {
	var v any = cats
	if len(cats) == 1 {
		v = cats[0]
	}
	raw, _ := json.Marshal(v)
	return raw
}
