// Package store provides chores.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	order       []recurrence.TaskID
	tasks       map[recurrence.TaskID]recurrence.Task
	completions recurrence.CompletionLog
	users       []chores.User
}

var _ chores.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		tasks:       make(map[recurrence.TaskID]recurrence.Task),
		completions: make(recurrence.CompletionLog),
	}
}

// ListTasks returns copies so callers can't mutate stored records.
func (m *Memory) ListTasks(_ context.Context) ([]recurrence.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]recurrence.Task, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.tasks[id].Clone())
	}
	return out, nil
}

func (m *Memory) GetTask(_ context.Context, id recurrence.TaskID) (recurrence.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok {
		return recurrence.Task{}, chores.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// SaveTask upserts. Existing tasks keep their position.
func (m *Memory) SaveTask(_ context.Context, task recurrence.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		m.order = append(m.order, task.ID)
	}
	m.tasks[task.ID] = task.Clone()
	return nil
}

func (m *Memory) DeleteTask(_ context.Context, id recurrence.TaskID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return chores.ErrTaskNotFound
	}
	delete(m.tasks, id)
	delete(m.completions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) ReplaceSchedule(_ context.Context, tasks []recurrence.Task, log recurrence.CompletionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = make([]recurrence.TaskID, 0, len(tasks))
	m.tasks = make(map[recurrence.TaskID]recurrence.Task, len(tasks))
	for _, t := range tasks {
		if _, dup := m.tasks[t.ID]; !dup {
			m.order = append(m.order, t.ID)
		}
		m.tasks[t.ID] = t.Clone()
	}
	m.completions = make(recurrence.CompletionLog, len(log))
	for k, v := range log {
		m.completions[k] = v
	}
	return nil
}

// =============================================================================
// COMPLETIONS
// =============================================================================

func (m *Memory) LoadCompletions(_ context.Context) (recurrence.CompletionLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(recurrence.CompletionLog, len(m.completions))
	for k, v := range m.completions {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) PutCompletion(_ context.Context, id recurrence.TaskID, c recurrence.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completions[id] = c
	return nil
}

func (m *Memory) DeleteCompletion(_ context.Context, id recurrence.TaskID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.completions, id)
	return nil
}

// =============================================================================
// USERS
// =============================================================================

func (m *Memory) ListUsers(_ context.Context) ([]chores.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]chores.User(nil), m.users...), nil
}

func (m *Memory) SaveUsers(_ context.Context, users []chores.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append([]chores.User(nil), users...)
	return nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = nil
	m.tasks = make(map[recurrence.TaskID]recurrence.Task)
	m.completions = make(recurrence.CompletionLog)
	m.users = nil
	return nil
}
