package chores

import (
	"github.com/shopspring/decimal"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// DAY AGENDA
// =============================================================================

// CategoryGroup is a run of pending tasks sharing a primary category.
type CategoryGroup struct {
	Category string
	Tasks    []recurrence.Task
}

// DayAgenda is everything due on one date, split by completion.
type DayAgenda struct {
	Date    recurrence.Date
	Pending []CategoryGroup
	Done    []recurrence.Task
	Total   int

	// Progress is the whole-number percentage of due tasks already done.
	// A day with nothing due counts as 100.
	Progress decimal.Decimal
}

// PendingCount is the number of tasks still to do.
func (a DayAgenda) PendingCount() int { return a.Total - len(a.Done) }

// AllDone reports whether nothing is left for the day.
func (a DayAgenda) AllDone() bool { return a.PendingCount() == 0 }

// BuildAgenda evaluates every task for date.
func BuildAgenda(e recurrence.Engine, tasks []recurrence.Task, log recurrence.CompletionLog, date recurrence.Date) DayAgenda {
	agenda := DayAgenda{Date: date}

	groups := make(map[string][]recurrence.Task)
	var order []string
	for _, t := range e.TasksForDate(tasks, date, log) {
		agenda.Total++
		if e.IsCompletedFor(t, date, log) {
			agenda.Done = append(agenda.Done, t)
			continue
		}
		cat := PrimaryCategory(t)
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], t)
	}

	SortCategories(order)
	for _, cat := range order {
		agenda.Pending = append(agenda.Pending, CategoryGroup{Category: cat, Tasks: groups[cat]})
	}
	agenda.Progress = progress(len(agenda.Done), agenda.Total)
	return agenda
}

func progress(done, total int) decimal.Decimal {
	if total == 0 {
		return hundred
	}
	return decimal.NewFromInt(int64(done)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0)
}

// =============================================================================
// MONTH CALENDAR
// =============================================================================

// CalendarDay summarizes one day of a month view.
type CalendarDay struct {
	Date    recurrence.Date
	Due     int
	Done    int
	IsToday bool
}

// BuildMonth summarizes every day of month.
func BuildMonth(e recurrence.Engine, tasks []recurrence.Task, log recurrence.CompletionLog, month recurrence.Period, today recurrence.Date) []CalendarDay {
	days := month.Days()
	out := make([]CalendarDay, 0, len(days))
	for _, d := range days {
		day := CalendarDay{Date: d, IsToday: d.Equal(today)}
		for _, t := range e.TasksForDate(tasks, d, log) {
			day.Due++
			if e.IsCompletedFor(t, d, log) {
				day.Done++
			}
		}
		out = append(out, day)
	}
	return out
}
