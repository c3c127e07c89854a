/*
Package sqlite provides a SQLite-backed chores.Store.

PURPOSE:
  Persists the household schedule, the completion log, and the user list.
  The store never computes schedules; it hands records back exactly as the
  service wrote them.

KEY TABLES:
  tasks:        one row per task, the record stored in the household JSON
                shape (factory.TaskJSON) plus its position in the schedule
  completions:  at most one row per task (the latest completion)
  users:        household members, in display order

RECORD FORMAT:
  Task rows hold the same JSON the front end exports, so a database can be
  dumped and re-imported through factory.ParseSchedule without loss.
  Period-keyed reschedules and the seed lastDone live inside record_json
  and round-trip untouched.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Multi-row replacements run in a
  single SQL transaction.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/chores.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := chores.NewService(store, recurrence.New(epoch))

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - chores/store.go: Interface definition
  - chores/store/memory.go: In-memory implementation for testing
  - factory/task.go: record codec
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/factory"
	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// Store implements chores.Store using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	records *factory.TaskFactory
}

var _ chores.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, records: factory.NewTaskFactory()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Task records in the household JSON shape
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		record_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);

	-- Latest completion per task
	CREATE TABLE IF NOT EXISTS completions (
		task_id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		actor TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	-- Household members
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// =============================================================================
// TASKS
// =============================================================================

// ListTasks returns every task in schedule order.
func (s *Store) ListTasks(ctx context.Context) ([]recurrence.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, record_json FROM tasks ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []recurrence.Task
	for rows.Next() {
		var id, record string
		if err := rows.Scan(&id, &record); err != nil {
			return nil, err
		}
		task, err := s.decode(id, record)
		if err != nil {
			// Corrupt rows are skipped, not fatal.
			log.Printf("[Store] Skipping task %s: %v", id, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id recurrence.TaskID) (recurrence.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var record string
	err := s.db.QueryRowContext(ctx, "SELECT record_json FROM tasks WHERE id = ?", string(id)).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return recurrence.Task{}, chores.ErrTaskNotFound
	}
	if err != nil {
		return recurrence.Task{}, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return s.decode(string(id), record)
}

// SaveTask inserts or replaces a task. New tasks go to the end of the schedule.
func (s *Store) SaveTask(ctx context.Context, task recurrence.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.records.EncodeTask(task)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
	}

	query := `
		INSERT INTO tasks (id, position, record_json, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM tasks), ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			record_json = excluded.record_json,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, string(task.ID), string(record), now()); err != nil {
		return fmt.Errorf("failed to save task %s: %w", task.ID, err)
	}
	return nil
}

// DeleteTask removes a task and its completion.
func (s *Store) DeleteTask(ctx context.Context, id recurrence.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	res, err := sqlTx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return chores.ErrTaskNotFound
	}
	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM completions WHERE task_id = ?", string(id)); err != nil {
		return fmt.Errorf("failed to delete completion %s: %w", id, err)
	}
	return sqlTx.Commit()
}

// ReplaceSchedule swaps every task and the completion log in one transaction.
func (s *Store) ReplaceSchedule(ctx context.Context, tasks []recurrence.Task, completions recurrence.CompletionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	if err := s.insertTasks(ctx, sqlTx, tasks); err != nil {
		return err
	}
	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM completions"); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	for id, c := range completions {
		if err := putCompletion(ctx, sqlTx, id, c); err != nil {
			return err
		}
	}
	return sqlTx.Commit()
}

func (s *Store) insertTasks(ctx context.Context, db execer, tasks []recurrence.Task) error {
	query := `
		INSERT INTO tasks (id, position, record_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			record_json = excluded.record_json,
			updated_at = excluded.updated_at
	`
	ts := now()
	for i, task := range tasks {
		record, err := s.records.EncodeTask(task)
		if err != nil {
			return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
		}
		if _, err := db.ExecContext(ctx, query, string(task.ID), i, string(record), ts); err != nil {
			return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
		}
	}
	return nil
}

func (s *Store) decode(id, record string) (recurrence.Task, error) {
	task, err := s.records.ParseTask([]byte(record))
	if err != nil {
		return recurrence.Task{}, err
	}
	task.ID = recurrence.TaskID(id)
	return task, nil
}

// =============================================================================
// COMPLETIONS
// =============================================================================

// LoadCompletions returns the whole completion log. Rows with a corrupt
// date are treated as no completion.
func (s *Store) LoadCompletions(ctx context.Context) (recurrence.CompletionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT task_id, date, actor FROM completions")
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}
	defer rows.Close()

	completions := recurrence.CompletionLog{}
	for rows.Next() {
		var id, date, actor string
		if err := rows.Scan(&id, &date, &actor); err != nil {
			return nil, err
		}
		d, ok := recurrence.ParseDate(date)
		if !ok {
			continue
		}
		completions[recurrence.TaskID(id)] = recurrence.Completion{Date: d, Actor: actor}
	}
	return completions, rows.Err()
}

// PutCompletion records the latest completion of a task.
func (s *Store) PutCompletion(ctx context.Context, id recurrence.TaskID, c recurrence.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return putCompletion(ctx, s.db, id, c)
}

func putCompletion(ctx context.Context, db execer, id recurrence.TaskID, c recurrence.Completion) error {
	query := `
		INSERT INTO completions (task_id, date, actor, recorded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(task_id) DO UPDATE SET
			date = excluded.date,
			actor = excluded.actor,
			recorded_at = excluded.recorded_at
	`
	if _, err := db.ExecContext(ctx, query, string(id), c.Date.String(), c.Actor, now()); err != nil {
		return fmt.Errorf("failed to put completion %s: %w", id, err)
	}
	return nil
}

// DeleteCompletion clears a task's completion. Clearing an absent record is not an error.
func (s *Store) DeleteCompletion(ctx context.Context, id recurrence.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM completions WHERE task_id = ?", string(id))
	return err
}

// =============================================================================
// USERS
// =============================================================================

// ListUsers returns household members in display order.
func (s *Store) ListUsers(ctx context.Context) ([]chores.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, color FROM users ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []chores.User
	for rows.Next() {
		var u chores.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Color); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveUsers replaces the household member list.
func (s *Store) SaveUsers(ctx context.Context, users []chores.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	for i, u := range users {
		if _, err := sqlTx.ExecContext(ctx,
			"INSERT INTO users (id, position, name, color) VALUES (?, ?, ?, ?)",
			u.ID, i, u.Name, u.Color,
		); err != nil {
			return fmt.Errorf("failed to save user %s: %w", u.ID, err)
		}
	}
	return sqlTx.Commit()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"completions", "tasks", "users"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
