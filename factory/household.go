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
// COMPLETION LOG
// =============================================================================

// CompletionJSON is one entry of the stored completion log, keyed by task id.
type CompletionJSON struct {
	Date string `json:"date"`
	User string `json:"user"`
}

// ParseCompletions decodes {"<task id>": {"date": ..., "user": ...}}.
// Entries with a corrupt date are dropped.
func ParseCompletions(data []byte) (recurrence.CompletionLog, error) {
	log := recurrence.CompletionLog{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return log, nil
	}

	var raw map[string]CompletionJSON
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse completions JSON: %w", err)
	}
	return completionsFromJSON(raw), nil
}

// EncodeCompletions is the inverse of ParseCompletions.
func EncodeCompletions(log recurrence.CompletionLog) ([]byte, error) {
	return json.Marshal(completionsToJSON(log))
}

func completionsFromJSON(raw map[string]CompletionJSON) recurrence.CompletionLog {
	log := make(recurrence.CompletionLog, len(raw))
	for id, c := range raw {
		d, ok := recurrence.ParseDate(c.Date)
		if !ok {
			continue
		}
		log[recurrence.TaskID(id)] = recurrence.Completion{Date: d, Actor: c.User}
	}
	return log
}

func completionsToJSON(log recurrence.CompletionLog) map[string]CompletionJSON {
	out := make(map[string]CompletionJSON, len(log))
	for id, c := range log {
		out[string(id)] = CompletionJSON{Date: c.Date.String(), User: c.Actor}
	}
	return out
}

// =============================================================================
// HOUSEHOLD EXPORT
// =============================================================================

// Household is everything one household stores.
type Household struct {
	Tasks       []recurrence.Task
	Completions recurrence.CompletionLog
	Users       []chores.User
}

// HouseholdJSON is the export layout: {"schedule", "completions", "users"}.
// Schedule and users may each be a list or an id-keyed object.
type HouseholdJSON struct {
	Schedule    json.RawMessage           `json:"schedule"`
	Completions map[string]CompletionJSON `json:"completions,omitempty"`
	Users       json.RawMessage           `json:"users,omitempty"`
}

// ParseHousehold decodes a household export. A bare schedule (array or
// id-keyed object of tasks) is accepted too.
func (f *TaskFactory) ParseHousehold(data []byte) (Household, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		tasks, err := f.ParseSchedule(trimmed)
		return Household{Tasks: tasks, Completions: recurrence.CompletionLog{}}, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return Household{}, fmt.Errorf("failed to parse household JSON: %w", err)
	}
	if _, ok := probe["schedule"]; !ok {
		tasks, err := f.ParseSchedule(trimmed)
		return Household{Tasks: tasks, Completions: recurrence.CompletionLog{}}, err
	}

	var hj HouseholdJSON
	if err := json.Unmarshal(trimmed, &hj); err != nil {
		return Household{}, fmt.Errorf("failed to parse household JSON: %w", err)
	}

	tasks, err := f.ParseSchedule(hj.Schedule)
	if err != nil {
		return Household{}, err
	}
	users, err := parseUsers(hj.Users)
	if err != nil {
		return Household{}, err
	}
	return Household{
		Tasks:       tasks,
		Completions: completionsFromJSON(hj.Completions),
		Users:       users,
	}, nil
}

// EncodeHousehold writes the export layout with the schedule as an array.
func (f *TaskFactory) EncodeHousehold(h Household) ([]byte, error) {
	schedule, err := f.EncodeSchedule(h.Tasks)
	if err != nil {
		return nil, err
	}
	var users json.RawMessage
	if len(h.Users) > 0 {
		if users, err = json.Marshal(h.Users); err != nil {
			return nil, err
		}
	}
	return json.MarshalIndent(HouseholdJSON{
		Schedule:    schedule,
		Completions: completionsToJSON(h.Completions),
		Users:       users,
	}, "", "  ")
}

func parseUsers(raw json.RawMessage) ([]chores.User, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var users []chores.User
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, fmt.Errorf("failed to parse users JSON: %w", err)
		}
		return users, nil
	}

	var byID map[string]chores.User
	if err := json.Unmarshal(trimmed, &byID); err != nil {
		return nil, fmt.Errorf("failed to parse users JSON: %w", err)
	}
	keys := make([]string, 0, len(byID))
	for k := range byID {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	users := make([]chores.User, 0, len(keys))
	for _, k := range keys {
		u := byID[k]
		if u.ID == "" {
			u.ID = k
		}
		users = append(users, u)
	}
	return users, nil
}
