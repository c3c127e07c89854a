/*
service.go - Household schedule service

PURPOSE:
  Glue between a Store and the recurrence engine. Loads the current
  snapshot, asks the engine for answers, applies the engine's pure
  transforms, and writes the result back.

ARCHITECTURE:
  Service holds all dependencies:
  - Store:  persistence
  - Engine: recurrence rules, aligned on the configured epoch
  - Clock:  "today" (injected so tests are deterministic)
  - IDs:    id minting for new tasks

CONCURRENCY:
  Read-modify-write operations (toggle, reschedule, edits) hold a mutex so
  two requests in the same process never interleave their snapshots.
  Cross-process reconciliation is out of scope.

SEE ALSO:
  - store.go: persistence interface
  - agenda.go, upcoming.go: read models
  - api/handlers.go: HTTP surface
*/
package chores

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// Service answers schedule questions and applies edits.
type Service struct {
	Store  Store
	Engine recurrence.Engine
	Clock  Clock
	IDs    IDGenerator

	mu sync.Mutex
}

// NewService creates a service using the wall clock and random ids.
func NewService(store Store, engine recurrence.Engine) *Service {
	return &Service{
		Store:  store,
		Engine: engine,
		Clock:  SystemClock{},
		IDs:    UUIDGenerator{},
	}
}

// Snapshot is the full schedule state at one instant.
type Snapshot struct {
	Tasks       []recurrence.Task
	Completions recurrence.CompletionLog
}

// Snapshot loads tasks and completions together.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	tasks, err := s.Store.ListTasks(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list tasks: %w", err)
	}
	completions, err := s.Store.LoadCompletions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load completions: %w", err)
	}
	return Snapshot{Tasks: tasks, Completions: completions}, nil
}

// Today returns the service clock's date.
func (s *Service) Today() recurrence.Date {
	return s.Clock.Today()
}

// =============================================================================
// TASK EDITS
// =============================================================================

// Task returns one task.
func (s *Service) Task(ctx context.Context, id recurrence.TaskID) (recurrence.Task, error) {
	return s.Store.GetTask(ctx, id)
}

// AddTask validates and stores a new task. An id is minted when empty.
func (s *Service) AddTask(ctx context.Context, t recurrence.Task) (recurrence.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := ValidateTask(t)
	if err != nil {
		return recurrence.Task{}, err
	}
	if t.ID == "" {
		t.ID = s.IDs.NewID()
	} else if _, err := s.Store.GetTask(ctx, t.ID); err == nil {
		return recurrence.Task{}, fmt.Errorf("%w: id %q already exists", ErrInvalidTask, t.ID)
	} else if !IsNotFound(err) {
		return recurrence.Task{}, err
	}

	if err := s.Store.SaveTask(ctx, t); err != nil {
		return recurrence.Task{}, fmt.Errorf("save task %s: %w", t.ID, err)
	}
	log.Printf("[Chores] Added task %s (%s)", t.ID, Label(t.Frequency))
	return t, nil
}

// UpdateTask replaces an existing task record.
func (s *Service) UpdateTask(ctx context.Context, t recurrence.Task) (recurrence.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Store.GetTask(ctx, t.ID); err != nil {
		return recurrence.Task{}, err
	}
	t, err := ValidateTask(t)
	if err != nil {
		return recurrence.Task{}, err
	}
	if err := s.Store.SaveTask(ctx, t); err != nil {
		return recurrence.Task{}, fmt.Errorf("save task %s: %w", t.ID, err)
	}
	return t, nil
}

// DeleteTask removes a task and its completion record.
func (s *Service) DeleteTask(ctx context.Context, id recurrence.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Store.DeleteTask(ctx, id); err != nil {
		return err
	}
	log.Printf("[Chores] Deleted task %s", id)
	return nil
}

// ReplaceSchedule swaps the whole schedule and completion log, e.g. when
// importing an export or loading a starter scenario.
func (s *Service) ReplaceSchedule(ctx context.Context, tasks []recurrence.Task, completions recurrence.CompletionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]recurrence.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = s.IDs.NewID()
		}
		// Imported records are kept even when the editor would refuse them;
		// the engine answers for degraded ones (an undated one-off is never due).
		if _, err := ValidateTask(t); err != nil {
			log.Printf("[Chores] Importing task %s as-is: %v", t.ID, err)
		}
		kept = append(kept, NormalizeTask(t))
	}
	if completions == nil {
		completions = recurrence.CompletionLog{}
	}
	if err := s.Store.ReplaceSchedule(ctx, kept, completions); err != nil {
		return fmt.Errorf("replace schedule: %w", err)
	}
	log.Printf("[Chores] Replaced schedule: %d tasks, %d completions", len(kept), len(completions))
	return nil
}

// NormalizeTask tidies a record without rejecting it: trimmed description,
// normalized categories, and frequency fields folded into range.
func NormalizeTask(t recurrence.Task) recurrence.Task {
	t = t.Clone()
	t.Description = strings.TrimSpace(t.Description)
	t.Categories = NormalizeCategories(t.Categories)
	t.Frequency = t.Frequency.Normalized()
	return t
}

// ValidateTask normalizes a task and rejects records the engine would
// only answer for in degraded form.
func ValidateTask(t recurrence.Task) (recurrence.Task, error) {
	t = t.Clone()
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return t, fmt.Errorf("%w: description is required", ErrInvalidTask)
	}
	t.Categories = NormalizeCategories(t.Categories)

	f := t.Frequency
	switch f.Kind {
	case recurrence.KindDaily:
	case recurrence.KindOnce:
		if f.Date.IsZero() {
			return t, fmt.Errorf("%w: one-time task needs a date", ErrInvalidTask)
		}
	case recurrence.KindWeekly:
		if f.Weekday < time.Sunday || f.Weekday > time.Saturday {
			return t, fmt.Errorf("%w: day of week %d out of range", ErrInvalidTask, f.Weekday)
		}
		if f.Multiplicity < 1 || f.Multiplicity > recurrence.MaxWeekMultiplicity {
			return t, fmt.Errorf("%w: week multiplicity %d outside [1, %d]", ErrInvalidTask, f.Multiplicity, recurrence.MaxWeekMultiplicity)
		}
		if f.WeekOffset < 0 || f.WeekOffset >= f.Multiplicity {
			return t, fmt.Errorf("%w: week offset %d outside [0, %d)", ErrInvalidTask, f.WeekOffset, f.Multiplicity)
		}
	case recurrence.KindFixedInterval, recurrence.KindLongInterval, recurrence.KindCustom:
		if f.Days <= 0 {
			return t, fmt.Errorf("%w: interval must be positive", ErrInvalidTask)
		}
		if f.NudgeDays < 0 {
			return t, fmt.Errorf("%w: nudge days must not be negative", ErrInvalidTask)
		}
	default:
		return t, fmt.Errorf("%w: unknown frequency %q", ErrInvalidTask, f.Kind)
	}
	return t, nil
}

// =============================================================================
// COMPLETIONS
// =============================================================================

// ToggleCompletion marks the task done on date by actor, or clears the
// record if it is already on date. Returns whether date now counts as done.
func (s *Service) ToggleCompletion(ctx context.Context, id recurrence.TaskID, date recurrence.Date, actor string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.Store.GetTask(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.checkActor(ctx, actor); err != nil {
		return false, err
	}
	current, err := s.Store.LoadCompletions(ctx)
	if err != nil {
		return false, fmt.Errorf("load completions: %w", err)
	}

	next := recurrence.ToggleCompletion(current, id, date, actor)
	if c, ok := next[id]; ok {
		err = s.Store.PutCompletion(ctx, id, c)
	} else {
		err = s.Store.DeleteCompletion(ctx, id)
	}
	if err != nil {
		return false, fmt.Errorf("write completion %s: %w", id, err)
	}
	return s.Engine.IsCompletedFor(task, date, next), nil
}

// Completions returns the current completion log.
func (s *Service) Completions(ctx context.Context) (recurrence.CompletionLog, error) {
	return s.Store.LoadCompletions(ctx)
}

func (s *Service) checkActor(ctx context.Context, actor string) error {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		users = DefaultUsers()
	}
	if _, ok := FindUser(users, actor); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUser, actor)
	}
	return nil
}

// =============================================================================
// RESCHEDULING
// =============================================================================

// Reschedule moves the occurrence in from's cycle to to. One-time tasks
// move their date instead; daily tasks cannot be moved.
func (s *Service) Reschedule(ctx context.Context, id recurrence.TaskID, from, to recurrence.Date) (recurrence.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.Store.GetTask(ctx, id)
	if err != nil {
		return recurrence.Task{}, err
	}
	if to.IsZero() {
		return recurrence.Task{}, fmt.Errorf("%w: target date is required", ErrInvalidTask)
	}

	switch task.Frequency.Kind {
	case recurrence.KindDaily:
		return recurrence.Task{}, fmt.Errorf("%w: daily tasks cannot be rescheduled", ErrInvalidTask)
	case recurrence.KindOnce:
		task = task.Clone()
		task.Frequency.Date = to
	default:
		completions, err := s.Store.LoadCompletions(ctx)
		if err != nil {
			return recurrence.Task{}, fmt.Errorf("load completions: %w", err)
		}
		key := s.Engine.PeriodKeyOf(task, from, completions)
		task = recurrence.WithOverride(task, key, to)
		log.Printf("[Chores] Moved %s cycle %s to %s", id, key, to)
	}

	if err := s.Store.SaveTask(ctx, task); err != nil {
		return recurrence.Task{}, fmt.Errorf("save task %s: %w", id, err)
	}
	return task, nil
}

// SetAnchor retargets every future cycle of a recurring task to align on date.
func (s *Service) SetAnchor(ctx context.Context, id recurrence.TaskID, date recurrence.Date) (recurrence.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.Store.GetTask(ctx, id)
	if err != nil {
		return recurrence.Task{}, err
	}
	switch task.Frequency.Kind {
	case recurrence.KindDaily, recurrence.KindOnce:
		return recurrence.Task{}, fmt.Errorf("%w: %s tasks have no recurring anchor", ErrInvalidTask, task.Frequency.Kind)
	}
	if date.IsZero() {
		task = recurrence.WithoutOverride(task, recurrence.AnchorKey)
	} else {
		task = recurrence.WithAnchor(task, date)
	}
	if err := s.Store.SaveTask(ctx, task); err != nil {
		return recurrence.Task{}, fmt.Errorf("save task %s: %w", id, err)
	}
	return task, nil
}

// ClearOverride drops one cycle's override.
func (s *Service) ClearOverride(ctx context.Context, id recurrence.TaskID, periodKey string) (recurrence.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.Store.GetTask(ctx, id)
	if err != nil {
		return recurrence.Task{}, err
	}
	task = recurrence.WithoutOverride(task, periodKey)
	if err := s.Store.SaveTask(ctx, task); err != nil {
		return recurrence.Task{}, fmt.Errorf("save task %s: %w", id, err)
	}
	return task, nil
}

// PeriodOf returns the period key and cycle of date for a task.
func (s *Service) PeriodOf(ctx context.Context, id recurrence.TaskID, date recurrence.Date) (string, recurrence.Period, error) {
	task, err := s.Store.GetTask(ctx, id)
	if err != nil {
		return "", recurrence.Period{}, err
	}
	completions, err := s.Store.LoadCompletions(ctx)
	if err != nil {
		return "", recurrence.Period{}, fmt.Errorf("load completions: %w", err)
	}
	return s.Engine.PeriodKeyOf(task, date, completions), s.Engine.CycleOf(task, date, completions), nil
}

// PruneOverrides drops per-cycle overrides whose cycle and moved date both
// end before cutoff. Anchors and keys that are not dates are kept.
// Returns the number of overrides removed.
func (s *Service) PruneOverrides(ctx context.Context, cutoff recurrence.Date) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.Store.ListTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tasks: %w", err)
	}
	completions, err := s.Store.LoadCompletions(ctx)
	if err != nil {
		return 0, fmt.Errorf("load completions: %w", err)
	}

	pruned := 0
	for _, task := range tasks {
		next := task
		for key, target := range task.Overrides {
			if key == recurrence.AnchorKey || !target.Before(cutoff) {
				continue
			}
			start, ok := recurrence.ParseDate(key)
			if !ok || !s.Engine.CycleOf(task, start, completions).End.Before(cutoff) {
				continue
			}
			next = recurrence.WithoutOverride(next, key)
			pruned++
		}
		if len(next.Overrides) == len(task.Overrides) {
			continue
		}
		if err := s.Store.SaveTask(ctx, next); err != nil {
			return pruned, fmt.Errorf("save task %s: %w", task.ID, err)
		}
	}
	if pruned > 0 {
		log.Printf("[Chores] Pruned %d overrides older than %s", pruned, cutoff)
	}
	return pruned, nil
}

// =============================================================================
// READ MODELS
// =============================================================================

// Agenda returns the day agenda for date.
func (s *Service) Agenda(ctx context.Context, date recurrence.Date) (DayAgenda, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return DayAgenda{}, err
	}
	return BuildAgenda(s.Engine, snap.Tasks, snap.Completions, date), nil
}

// Month returns the calendar summary for a month.
func (s *Service) Month(ctx context.Context, year int, month time.Month) ([]CalendarDay, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMonth(s.Engine, snap.Tasks, snap.Completions, recurrence.MonthPeriod(year, month), s.Today()), nil
}

// Upcoming returns every task ordered by next due date.
func (s *Service) Upcoming(ctx context.Context) ([]UpcomingTask, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BuildUpcoming(s.Engine, snap.Tasks, snap.Completions, s.Today()), nil
}

// =============================================================================
// USERS
// =============================================================================

// Users returns the household, falling back to DefaultUsers when none are stored.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return DefaultUsers(), nil
	}
	return users, nil
}

// SaveUsers validates and replaces the household.
func (s *Service) SaveUsers(ctx context.Context, users []User) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := ValidateUsers(users)
	if err != nil {
		return nil, err
	}
	if err := s.Store.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	return users, nil
}
