/*
store.go - Persistence interface for the household schedule

PURPOSE:
  Defines the boundary between the service and the database. The store
  persists task records, the completion log, and the user list exactly as
  given; it never computes schedules.

RECORD CONTRACT:
  Task records are replaced wholesale. Overrides and the seed LastDone must
  round-trip unchanged, because period keys and cadence depend on them.
  The completion log keeps at most one record per task; PutCompletion
  overwrites, DeleteCompletion clears.

ORDERING:
  ListTasks returns tasks in schedule order: SaveTask keeps an existing
  task's position and appends new tasks at the end.

IMPLEMENTATIONS:
  - chores/store/memory.go: in-memory, for tests and dev
  - store/sqlite/sqlite.go: SQLite

SEE ALSO:
  - service.go: the only caller
*/
package chores

import (
	"context"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// Store persists the household schedule.
type Store interface {
	// ListTasks returns every task in schedule order.
	ListTasks(ctx context.Context) ([]recurrence.Task, error)

	// GetTask returns ErrTaskNotFound for unknown ids.
	GetTask(ctx context.Context, id recurrence.TaskID) (recurrence.Task, error)

	// SaveTask inserts or replaces a task.
	SaveTask(ctx context.Context, task recurrence.Task) error

	// DeleteTask removes a task and its completion record.
	// Returns ErrTaskNotFound for unknown ids.
	DeleteTask(ctx context.Context, id recurrence.TaskID) error

	LoadCompletions(ctx context.Context) (recurrence.CompletionLog, error)
	PutCompletion(ctx context.Context, id recurrence.TaskID, c recurrence.Completion) error
	DeleteCompletion(ctx context.Context, id recurrence.TaskID) error

	// ReplaceSchedule swaps every task and the whole completion log in one
	// write. On error neither is changed.
	ReplaceSchedule(ctx context.Context, tasks []recurrence.Task, log recurrence.CompletionLog) error

	ListUsers(ctx context.Context) ([]User, error)
	SaveUsers(ctx context.Context, users []User) error

	// Reset drops every task, completion and user.
	Reset(ctx context.Context) error
}
