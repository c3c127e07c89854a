/*
Package recurrence decides when household tasks are due.

PURPOSE:
  Pure recurrence engine. Every answer is a function of (task, date,
  completion log) plus the Engine's epoch, so any number of devices holding
  the same snapshot compute the same schedule independently.

OPERATIONS:
  IsDueOn         is the task due on exactly this date?
  PeriodKeyOf     which recurrence cycle does this date belong to?
  IsCompletedFor  does the recorded completion satisfy this date's cycle?
  DaysUntilDue    how many days from today until the next due occurrence?

EPOCH:
  A single reference date shared by every task. Weekly rotations count
  weeks from it, and fresh interval tasks with no history start from it.
  The epoch is configuration, passed in through New.

OVERRIDES:
  A task may move one cycle's occurrence to another date. The override is
  stored under the cycle's period key, which is why PeriodKeyOf must be
  called with the same completion log the predicate sees: moving the last
  completion shifts which cycle a future date falls into, and an override
  whose cycle has been shifted away no longer fires. The AnchorKey
  override instead retargets the alignment of every cycle from its date on.

TOTALITY:
  Nothing here returns an error, panics, or loops unboundedly. Malformed
  input degrades to a defined answer.

SEE ALSO:
  - frequency.go: recurrence classes and IntervalOf
  - task.go: records and pure transforms
*/
package recurrence

import "time"

// Engine evaluates recurrences against a fixed epoch.
type Engine struct {
	Epoch Date
}

// New returns an engine aligned on epoch.
func New(epoch Date) Engine {
	return Engine{Epoch: epoch}
}

// =============================================================================
// OCCURRENCE PREDICATE
// =============================================================================

// IsDueOn reports whether task is due on date.
func (e Engine) IsDueOn(task Task, date Date, log CompletionLog) bool {
	f := task.Frequency
	switch f.Kind {
	case KindOnce:
		return !f.Date.IsZero() && f.Date.Equal(date)
	case KindDaily:
		return true
	}

	// A moved occurrence lands on its target even when the target sits in
	// a neighbouring cycle.
	if e.movedOnto(task, date, log) {
		return true
	}
	if _, ok := task.Override(e.PeriodKeyOf(task, date, log)); ok {
		return false
	}
	return e.naturallyDueOn(task, date, log)
}

// TasksForDate filters tasks down to those due on date, preserving order.
func (e Engine) TasksForDate(tasks []Task, date Date, log CompletionLog) []Task {
	var due []Task
	for _, t := range tasks {
		if e.IsDueOn(t, date, log) {
			due = append(due, t)
		}
	}
	return due
}

func (e Engine) naturallyDueOn(task Task, date Date, log CompletionLog) bool {
	f := task.Frequency
	switch f.Kind {
	case KindFixedInterval:
		return e.firstDue(task, log).Equal(date)
	case KindWeekly:
		return e.weeklyMatches(task, date, log)
	default:
		first := e.firstDue(task, log)
		if date.Before(first) {
			return false
		}
		return floorMod(DaysBetween(first, date), IntervalOf(f)) == 0
	}
}

// movedOnto reports whether an override targets date. Overrides written
// for a cycle that no longer exists under log, because a later completion
// or anchor shifted the cadence, are ignored.
func (e Engine) movedOnto(task Task, date Date, log CompletionLog) bool {
	for key, target := range task.Overrides {
		if key == AnchorKey || target.IsZero() || !target.Equal(date) {
			continue
		}
		if start, ok := ParseDate(key); ok && e.cycleStart(task, start, log).Equal(start) {
			return true
		}
	}
	return false
}

// firstDue is the first natural due date for interval tasks, and the start
// of cycle zero for weekly tasks.
func (e Engine) firstDue(task Task, log CompletionLog) Date {
	f := task.Frequency
	if f.Kind == KindWeekly {
		start, _, _ := e.weeklyAlignment(task)
		return start
	}

	last := LastDone(task, log)
	var due Date
	switch {
	case f.Kind == KindFixedInterval && last.IsZero():
		due = e.Epoch
	case last.IsZero():
		due = e.Epoch.AddDays(f.nudgeDays())
	default:
		due = last.AddDays(IntervalOf(f))
	}

	// A completion on or after the anchor restarts the cadence from the completion.
	if anchor, ok := task.Anchor(); ok && (last.IsZero() || anchor.After(last)) {
		due = anchor
	}
	return due
}

// =============================================================================
// WEEKLY FAMILY
// =============================================================================

// weeklyAlignment returns the first cycle start, the weekday, and the week
// rotation a weekly task follows. An anchor override replaces all three
// with the anchor date's own.
func (e Engine) weeklyAlignment(task Task) (start Date, dow time.Weekday, offset int) {
	f := task.Frequency
	if anchor, ok := task.Anchor(); ok {
		return anchor, anchor.Weekday(), floorMod(e.weekNumber(anchor), f.multiplicity())
	}
	dow = f.weekday()
	diff := floorMod(int(dow)-int(e.Epoch.Weekday()), 7)
	return e.Epoch.AddDays(diff), dow, f.weekOffset()
}

// weekNumber is the zero-based week index of date counted from the epoch.
func (e Engine) weekNumber(date Date) int {
	return floorDiv(DaysBetween(e.Epoch, date), 7)
}

func (e Engine) weeklyMatches(task Task, date Date, log CompletionLog) bool {
	f := task.Frequency
	start, dow, offset := e.weeklyAlignment(task)
	if date.Weekday() != dow {
		return false
	}
	if floorMod(e.weekNumber(date), f.multiplicity()) != offset {
		return false
	}

	anchor, anchored := task.Anchor()
	if anchored && date.Before(anchor) {
		return false
	}

	last := LastDone(task, log)
	if last.IsZero() || (anchored && last.Before(anchor)) {
		return date.AfterOrEqual(start)
	}
	// Guards against firing twice inside one cadence window.
	return DaysBetween(last, date) >= IntervalOf(f)-1
}

// =============================================================================
// PERIOD KEY RESOLVER
// =============================================================================

// PeriodKeyOf returns the key of the recurrence cycle containing date.
//
//   - Once: the task's own date
//   - Weekly: cycles step by the interval from the first matching weekday
//     on or after the epoch (or from the anchor)
//   - FixedInterval, LongInterval, Custom: cycles step by the interval from
//     the first due date; dates before it belong to the first cycle
func (e Engine) PeriodKeyOf(task Task, date Date, log CompletionLog) string {
	return e.cycleStart(task, date, log).String()
}

// CycleOf returns the cycle date is assigned to. Its Start is the period key.
// Dates before a task's first due date are assigned to the first cycle.
func (e Engine) CycleOf(task Task, date Date, log CompletionLog) Period {
	start := e.cycleStart(task, date, log)
	n := IntervalOf(task.Frequency)
	if n < 1 {
		n = 1
	}
	return Period{Start: start, End: start.AddDays(n - 1)}
}

func (e Engine) cycleStart(task Task, date Date, log CompletionLog) Date {
	f := task.Frequency
	switch f.Kind {
	case KindOnce:
		if f.Date.IsZero() {
			return date
		}
		return f.Date
	case KindDaily:
		return date
	}

	first := e.firstDue(task, log)
	if date.Before(first) {
		return first
	}
	interval := IntervalOf(f)
	k := floorDiv(DaysBetween(first, date), interval)
	return first.AddDays(k * interval)
}

// =============================================================================
// COMPLETION EVALUATOR & NEXT-DUE PROJECTOR
// =============================================================================

// IsCompletedFor reports whether the recorded completion satisfies date.
// Daily and Once need an exact match; other tasks accept a completion
// anywhere in [date-(interval-1), date].
func (e Engine) IsCompletedFor(task Task, date Date, log CompletionLog) bool {
	c, ok := log[task.ID]
	if !ok || c.Date.IsZero() {
		return false
	}
	switch task.Frequency.Kind {
	case KindDaily, KindOnce:
		return c.Date.Equal(date)
	}
	interval := IntervalOf(task.Frequency)
	return c.Date.AfterOrEqual(date.AddDays(-(interval - 1))) && c.Date.BeforeOrEqual(date)
}

// DaysUntilDue returns how many days from today until the task is next due.
// Zero means due today or overdue.
func (e Engine) DaysUntilDue(task Task, log CompletionLog, today Date) int {
	f := task.Frequency
	switch f.Kind {
	case KindDaily:
		return 0
	case KindOnce:
		if f.Date.IsZero() {
			return 0
		}
		return max(0, DaysBetween(today, f.Date))
	case KindFixedInterval:
		return max(0, DaysBetween(today, e.firstDue(task, log)))
	case KindWeekly:
		return e.weeklyDaysUntil(task, log, today)
	default:
		first := e.firstDue(task, log)
		if first.BeforeOrEqual(today) {
			return 0
		}
		return DaysBetween(today, first)
	}
}

// weeklyDaysUntil looks at most two cycles ahead. Only dates on the task's
// weekday and rotation can match, so it steps from the first such date one
// whole cycle at a time. Nothing within reach gives the interval.
func (e Engine) weeklyDaysUntil(task Task, log CompletionLog, today Date) int {
	interval := IntervalOf(task.Frequency)
	_, dow, offset := e.weeklyAlignment(task)

	first := floorMod(int(dow)-int(today.Weekday()), 7)
	week := e.weekNumber(today.AddDays(first))
	first += 7 * floorMod(offset-week, task.Frequency.multiplicity())

	for i := first; i <= 2*interval; i += interval {
		if e.weeklyMatches(task, today.AddDays(i), log) {
			return i
		}
	}
	return interval
}

// NextDueDate is today plus DaysUntilDue.
func (e Engine) NextDueDate(task Task, log CompletionLog, today Date) Date {
	return today.AddDays(e.DaysUntilDue(task, log, today))
}
