package chores

import (
	"sort"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// UpcomingTask is one row of the all-tasks view.
type UpcomingTask struct {
	Task         recurrence.Task
	DaysUntilDue int
	NextDue      recurrence.Date
	Label        string

	// CompletedNow is true when the last completion covers today.
	CompletedNow bool

	// Completion is the last recorded completion, if any.
	Completion *recurrence.Completion
}

// BuildUpcoming projects every task forward from today, soonest first.
func BuildUpcoming(e recurrence.Engine, tasks []recurrence.Task, log recurrence.CompletionLog, today recurrence.Date) []UpcomingTask {
	out := make([]UpcomingTask, 0, len(tasks))
	for _, t := range tasks {
		days := e.DaysUntilDue(t, log, today)
		row := UpcomingTask{
			Task:         t,
			DaysUntilDue: days,
			NextDue:      today.AddDays(days),
			Label:        Label(t.Frequency),
			CompletedNow: e.IsCompletedFor(t, today, log),
		}
		if c, ok := log[t.ID]; ok {
			c := c
			row.Completion = &c
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysUntilDue != out[j].DaysUntilDue {
			return out[i].DaysUntilDue < out[j].DaysUntilDue
		}
		return out[i].Task.Description < out[j].Task.Description
	})
	return out
}
