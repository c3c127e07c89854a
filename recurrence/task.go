package recurrence

// =============================================================================
// TASK RECORD & COMPLETION LOG
// =============================================================================

// TaskID is an opaque, stable task identifier.
type TaskID string

// AnchorKey is the override key that retargets the whole recurrence
// alignment instead of a single cycle.
const AnchorKey = "__anchor"

// Task is an immutable task record. Edits replace the record wholesale;
// the With* helpers below return modified copies.
type Task struct {
	ID          TaskID
	Description string
	Categories  []string
	Frequency   Frequency

	// LastDone seeds the recurrence until the completion log has a record.
	LastDone Date

	// Overrides maps a period key to the date that cycle's occurrence moved to.
	Overrides map[string]Date

	// TimeOfDay is an opaque tag for the UI ("morning", "evening").
	TimeOfDay string
}

// Completion is the single most recent completion of a task.
type Completion struct {
	Date  Date
	Actor string
}

// CompletionLog holds at most one completion per task.
// Treat it as immutable; WithCompletion and friends return new logs.
type CompletionLog map[TaskID]Completion

// LastDone returns the completion log's date for the task, else the task's
// seed, else the zero Date.
func LastDone(task Task, log CompletionLog) Date {
	if c, ok := log[task.ID]; ok && !c.Date.IsZero() {
		return c.Date
	}
	return task.LastDone
}

// Anchor returns the anchor override, if any.
func (t Task) Anchor() (Date, bool) {
	d, ok := t.Overrides[AnchorKey]
	if !ok || d.IsZero() {
		return Date{}, false
	}
	return d, true
}

// Override returns the date a cycle was moved to.
func (t Task) Override(periodKey string) (Date, bool) {
	if periodKey == AnchorKey {
		return Date{}, false
	}
	d, ok := t.Overrides[periodKey]
	if !ok || d.IsZero() {
		return Date{}, false
	}
	return d, true
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	if t.Categories != nil {
		out.Categories = append([]string(nil), t.Categories...)
	}
	if t.Overrides != nil {
		out.Overrides = make(map[string]Date, len(t.Overrides))
		for k, v := range t.Overrides {
			out.Overrides[k] = v
		}
	}
	return out
}

// =============================================================================
// PURE TRANSFORMS
// =============================================================================

// WithOverride moves the occurrence of one cycle to newDate.
func WithOverride(task Task, periodKey string, newDate Date) Task {
	out := task.Clone()
	if out.Overrides == nil {
		out.Overrides = make(map[string]Date, 1)
	}
	out.Overrides[periodKey] = newDate
	return out
}

// WithoutOverride drops the override for one cycle.
func WithoutOverride(task Task, periodKey string) Task {
	if _, ok := task.Overrides[periodKey]; !ok {
		return task
	}
	out := task.Clone()
	delete(out.Overrides, periodKey)
	if len(out.Overrides) == 0 {
		out.Overrides = nil
	}
	return out
}

// WithAnchor retargets every future cycle of the task to align on date.
func WithAnchor(task Task, date Date) Task {
	return WithOverride(task, AnchorKey, date)
}

// WithCompletion records a completion, replacing any previous one.
func WithCompletion(log CompletionLog, id TaskID, date Date, actor string) CompletionLog {
	out := make(CompletionLog, len(log)+1)
	for k, v := range log {
		out[k] = v
	}
	out[id] = Completion{Date: date, Actor: actor}
	return out
}

// WithoutCompletion clears the task's completion record.
func WithoutCompletion(log CompletionLog, id TaskID) CompletionLog {
	out := make(CompletionLog, len(log))
	for k, v := range log {
		if k != id {
			out[k] = v
		}
	}
	return out
}

// ToggleCompletion clears the record when it is already on date, otherwise
// records a completion on date.
func ToggleCompletion(log CompletionLog, id TaskID, date Date, actor string) CompletionLog {
	if c, ok := log[id]; ok && c.Date.Equal(date) {
		return WithoutCompletion(log, id)
	}
	return WithCompletion(log, id, date, actor)
}
