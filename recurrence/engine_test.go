package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// 2026-02-01 is a Sunday.
var epoch = recurrence.MustParseDate("2026-02-01")

func newEngine() recurrence.Engine {
	return recurrence.New(epoch)
}

func date(s string) recurrence.Date {
	return recurrence.MustParseDate(s)
}

func task(id string, f recurrence.Frequency) recurrence.Task {
	return recurrence.Task{
		ID:          recurrence.TaskID(id),
		Description: id,
		Categories:  []string{"Misc"},
		Frequency:   f,
	}
}

func doneOn(id string, d recurrence.Date) recurrence.CompletionLog {
	return recurrence.WithCompletion(nil, recurrence.TaskID(id), d, "A")
}

// dueDates lists every date in [from, from+n) the task is due on.
func dueDates(e recurrence.Engine, t recurrence.Task, from recurrence.Date, n int, log recurrence.CompletionLog) []string {
	var out []string
	for i := 0; i < n; i++ {
		d := from.AddDays(i)
		if e.IsDueOn(t, d, log) {
			out = append(out, d.String())
		}
	}
	return out
}

// =============================================================================
// INTERVAL RESOLVER
// =============================================================================

func TestIntervalOf(t *testing.T) {
	tests := []struct {
		name string
		freq recurrence.Frequency
		want int
	}{
		{"once", recurrence.Once(date("2026-03-01")), 0},
		{"daily", recurrence.Daily(), 1},
		{"every 3 days", recurrence.EveryNDays(3), 3},
		{"weekly", recurrence.Weekly(time.Friday, 1, 0), 7},
		{"biweekly", recurrence.Weekly(time.Friday, 2, 1), 14},
		{"triweekly", recurrence.Weekly(time.Monday, 3, 2), 21},
		{"quarterly", recurrence.LongInterval(91, 14), 91},
		{"custom", recurrence.Custom(10, 14), 10},
		{"custom zero falls back", recurrence.Custom(0, 14), 7},
		{"fixed negative falls back", recurrence.EveryNDays(-2), 7},
		{"weekly zero multiplicity", recurrence.Weekly(time.Monday, 0, 0), 7},
		{"unknown kind", recurrence.Frequency{Kind: "fortnightly"}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recurrence.IntervalOf(tt.freq))
		})
	}
}

// =============================================================================
// OCCURRENCE PREDICATE
// =============================================================================

func TestIsDueOn_Daily_AlwaysDue(t *testing.T) {
	e := newEngine()
	tk := task("dishes", recurrence.Daily())
	log := doneOn("dishes", date("2026-02-10"))

	for i := -30; i < 60; i++ {
		d := epoch.AddDays(i)
		assert.True(t, e.IsDueOn(tk, d, log), "daily task should be due on %s", d)
	}
}

func TestIsDueOn_Once_OnlyOnItsDate(t *testing.T) {
	e := newEngine()
	tk := task("gutters", recurrence.Once(date("2026-04-11")))

	got := dueDates(e, tk, date("2026-04-01"), 30, nil)
	assert.Equal(t, []string{"2026-04-11"}, got)
}

func TestIsDueOn_Once_IgnoresOverrides(t *testing.T) {
	e := newEngine()
	tk := task("gutters", recurrence.Once(date("2026-04-11")))
	tk = recurrence.WithOverride(tk, "2026-04-11", date("2026-04-12"))

	assert.True(t, e.IsDueOn(tk, date("2026-04-11"), nil))
	assert.False(t, e.IsDueOn(tk, date("2026-04-12"), nil))
}

func TestIsDueOn_FixedInterval_BootstrapsOnEpoch(t *testing.T) {
	// GIVEN: every-3-days task with no completion and no seed
	e := newEngine()
	tk := task("litter", recurrence.EveryNDays(3))

	// THEN: due on the epoch and nowhere within two days of it
	assert.True(t, e.IsDueOn(tk, epoch, nil))
	for _, off := range []int{-2, -1, 1, 2} {
		assert.False(t, e.IsDueOn(tk, epoch.AddDays(off), nil), "offset %d", off)
	}
}

func TestIsDueOn_FixedInterval_FromLastCompletion(t *testing.T) {
	e := newEngine()
	tk := task("litter", recurrence.EveryNDays(3))
	log := doneOn("litter", date("2026-02-10"))

	got := dueDates(e, tk, date("2026-02-01"), 30, log)
	assert.Equal(t, []string{"2026-02-13"}, got, "fixed interval fires once past the last completion")
}

func TestIsDueOn_FixedInterval_SeedUsedWithoutLog(t *testing.T) {
	e := newEngine()
	tk := task("litter", recurrence.EveryNDays(3))
	tk.LastDone = date("2026-02-04")

	assert.True(t, e.IsDueOn(tk, date("2026-02-07"), nil))

	// The log wins over the seed.
	log := doneOn("litter", date("2026-02-08"))
	assert.False(t, e.IsDueOn(tk, date("2026-02-07"), log))
	assert.True(t, e.IsDueOn(tk, date("2026-02-11"), log))
}

func TestIsDueOn_Weekly_BiweeklyRotation(t *testing.T) {
	// GIVEN: Friday, every 2 weeks, even weeks from the epoch
	e := newEngine()
	tk := task("cabinets", recurrence.Weekly(time.Friday, 2, 0))
	firstFriday := date("2026-02-06")

	// THEN: due on even-week Fridays only
	for k := 0; k < 12; k++ {
		friday := firstFriday.AddDays(7 * k)
		assert.Equal(t, k%2 == 0, e.IsDueOn(tk, friday, nil), "friday %s (week %d)", friday, k)
		assert.False(t, e.IsDueOn(tk, friday.AddDays(-1), nil), "thursday before %s", friday)
	}
}

func TestIsDueOn_Weekly_OddOffset(t *testing.T) {
	e := newEngine()
	tk := task("baseboards", recurrence.Weekly(time.Thursday, 2, 1))

	got := dueDates(e, tk, epoch, 35, nil)
	assert.Equal(t, []string{"2026-02-12", "2026-02-26"}, got)
}

func TestIsDueOn_Weekly_Triweekly(t *testing.T) {
	e := newEngine()
	tk := task("fridge", recurrence.Weekly(time.Sunday, 3, 2))

	got := dueDates(e, tk, epoch, 50, nil)
	assert.Equal(t, []string{"2026-02-15", "2026-03-08"}, got)
}

func TestIsDueOn_Weekly_NotBeforeEpochWithoutHistory(t *testing.T) {
	e := newEngine()
	tk := task("sheets", recurrence.Weekly(time.Friday, 1, 0))

	assert.False(t, e.IsDueOn(tk, date("2026-01-30"), nil))
	assert.True(t, e.IsDueOn(tk, date("2026-02-06"), nil))
}

func TestIsDueOn_Weekly_MinimumElapsedSinceCompletion(t *testing.T) {
	// GIVEN: weekly Friday task completed early on Thursday
	e := newEngine()
	tk := task("sheets", recurrence.Weekly(time.Friday, 1, 0))
	log := doneOn("sheets", date("2026-02-05"))

	// THEN: the very next day is skipped, the following Friday is due
	assert.False(t, e.IsDueOn(tk, date("2026-02-06"), log))
	assert.True(t, e.IsDueOn(tk, date("2026-02-13"), log))
}

func TestIsDueOn_LongInterval_Nudge(t *testing.T) {
	// GIVEN: quarterly task, nudged 14 days past the epoch
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))

	// THEN: first due at epoch+14, then every 91 days
	got := dueDates(e, tk, epoch, 200, nil)
	assert.Equal(t, []string{"2026-02-15", "2026-05-17", "2026-08-16"}, got)
}

func TestIsDueOn_LongInterval_AfterCompletion(t *testing.T) {
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))
	d := date("2026-03-10")
	log := doneOn("oven", d)

	assert.True(t, e.IsDueOn(tk, d.AddDays(91), log))
	assert.True(t, e.IsDueOn(tk, d.AddDays(182), log))
	assert.False(t, e.IsDueOn(tk, date("2026-05-17"), log), "cadence restarts at the completion")
	assert.False(t, e.IsDueOn(tk, d.AddDays(90), log))
}

func TestIsDueOn_Custom_BehavesLikeLongInterval(t *testing.T) {
	e := newEngine()
	tk := task("plants", recurrence.Custom(10, 3))

	got := dueDates(e, tk, epoch, 25, nil)
	assert.Equal(t, []string{"2026-02-04", "2026-02-14", "2026-02-24"}, got)
}

// =============================================================================
// OVERRIDES
// =============================================================================

func TestIsDueOn_OverridePrecedence(t *testing.T) {
	// GIVEN: biweekly Friday task naturally due on 2026-02-20
	e := newEngine()
	tk := task("cabinets", recurrence.Weekly(time.Friday, 2, 0))
	natural := date("2026-02-20")
	moved := date("2026-02-21")
	require.True(t, e.IsDueOn(tk, natural, nil))

	// WHEN: that cycle is moved to Saturday
	key := e.PeriodKeyOf(tk, natural, nil)
	tk = recurrence.WithOverride(tk, key, moved)

	// THEN: the natural date is suppressed and the target is due
	assert.False(t, e.IsDueOn(tk, natural, nil))
	assert.True(t, e.IsDueOn(tk, moved, nil))
	assert.True(t, e.IsDueOn(tk, date("2026-03-06"), nil), "next cycle unaffected")
}

func TestIsDueOn_OverrideIntoNextCycle(t *testing.T) {
	e := newEngine()
	tk := task("cabinets", recurrence.Weekly(time.Friday, 2, 0))
	natural := date("2026-02-20")
	moved := date("2026-03-07")
	tk = recurrence.WithOverride(tk, e.PeriodKeyOf(tk, natural, nil), moved)

	assert.False(t, e.IsDueOn(tk, natural, nil))
	assert.True(t, e.IsDueOn(tk, moved, nil))
	assert.True(t, e.IsDueOn(tk, date("2026-03-06"), nil))
}

func TestIsDueOn_OverrideLongInterval(t *testing.T) {
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))
	tk = recurrence.WithOverride(tk, "2026-05-17", date("2026-05-20"))

	got := dueDates(e, tk, epoch, 200, nil)
	assert.Equal(t, []string{"2026-02-15", "2026-05-20", "2026-08-16"}, got)
}

func TestIsDueOn_OverrideDroppedWhenCompletionShiftsCycle(t *testing.T) {
	// GIVEN: a quarterly task whose first cycle is moved to 2026-02-25
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))
	tk = recurrence.WithOverride(tk, "2026-02-15", date("2026-02-25"))
	require.True(t, e.IsDueOn(tk, date("2026-02-25"), nil))

	// WHEN: it is done early, before the moved date
	log := doneOn("oven", date("2026-02-20"))

	// THEN: the moved date no longer fires and the cadence restarts from the completion
	assert.False(t, e.IsDueOn(tk, date("2026-02-25"), log))
	assert.True(t, e.IsDueOn(tk, date("2026-05-22"), log))

	// Keys that are not dates never fire
	junk := recurrence.WithOverride(task("oven", recurrence.LongInterval(91, 14)), "soon", date("2026-02-25"))
	assert.False(t, e.IsDueOn(junk, date("2026-02-25"), nil))
}

func TestIsDueOn_AnchorRetargetsLongInterval(t *testing.T) {
	e := newEngine()
	tk := recurrence.WithAnchor(task("vents", recurrence.LongInterval(30, 14)), date("2026-03-03"))

	got := dueDates(e, tk, epoch, 70, nil)
	assert.Equal(t, []string{"2026-03-03", "2026-04-02"}, got)

	// A completion before the anchor does not pull the cadence back.
	assert.True(t, e.IsDueOn(tk, date("2026-03-03"), doneOn("vents", date("2026-02-20"))))

	// Completing the anchored occurrence advances from the completion.
	log := doneOn("vents", date("2026-03-03"))
	assert.False(t, e.IsDueOn(tk, date("2026-03-03"), log))
	assert.True(t, e.IsDueOn(tk, date("2026-04-02"), log))
}

func TestIsDueOn_AnchorRetargetsWeekly(t *testing.T) {
	// GIVEN: biweekly Friday task re-anchored to Wednesday 2026-02-25 (week 3)
	e := newEngine()
	tk := recurrence.WithAnchor(task("rug", recurrence.Weekly(time.Friday, 2, 0)), date("2026-02-25"))

	got := dueDates(e, tk, epoch, 42, nil)
	assert.Equal(t, []string{"2026-02-25", "2026-03-11"}, got)
}

// =============================================================================
// PERIOD KEY RESOLVER
// =============================================================================

func TestPeriodKeyOf_LongIntervalStableWithinCycle(t *testing.T) {
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))
	start := date("2026-02-15")

	for i := 0; i < 91; i++ {
		assert.Equal(t, "2026-02-15", e.PeriodKeyOf(tk, start.AddDays(i), nil), "day %d", i)
	}
	assert.Equal(t, "2026-05-17", e.PeriodKeyOf(tk, start.AddDays(91), nil))
	assert.Equal(t, "2026-02-15", e.PeriodKeyOf(tk, epoch, nil), "dates before the first due date map to it")
}

func TestPeriodKeyOf_ShiftsWithCompletion(t *testing.T) {
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))
	d := date("2026-06-20")

	before := e.PeriodKeyOf(tk, d, nil)
	after := e.PeriodKeyOf(tk, d, doneOn("oven", date("2026-03-10")))

	assert.Equal(t, "2026-05-17", before)
	assert.Equal(t, "2026-06-09", after)
}

func TestPeriodKeyOf_Weekly(t *testing.T) {
	e := newEngine()
	tk := task("cabinets", recurrence.Weekly(time.Friday, 2, 0))

	assert.Equal(t, "2026-02-06", e.PeriodKeyOf(tk, date("2026-02-01"), nil))
	assert.Equal(t, "2026-02-06", e.PeriodKeyOf(tk, date("2026-02-19"), nil))
	assert.Equal(t, "2026-02-20", e.PeriodKeyOf(tk, date("2026-02-20"), nil))
	assert.Equal(t, "2026-02-20", e.PeriodKeyOf(tk, date("2026-03-05"), nil))
}

func TestPeriodKeyOf_OnceAndDaily(t *testing.T) {
	e := newEngine()

	once := task("gutters", recurrence.Once(date("2026-04-11")))
	assert.Equal(t, "2026-04-11", e.PeriodKeyOf(once, date("2026-02-02"), nil))

	undated := task("gutters", recurrence.Once(recurrence.Date{}))
	assert.Equal(t, "2026-02-02", e.PeriodKeyOf(undated, date("2026-02-02"), nil))

	daily := task("dishes", recurrence.Daily())
	assert.Equal(t, "2026-02-02", e.PeriodKeyOf(daily, date("2026-02-02"), nil))
}

func TestCycleOf(t *testing.T) {
	e := newEngine()
	tk := task("cabinets", recurrence.Weekly(time.Friday, 2, 0))

	cycle := e.CycleOf(tk, date("2026-02-25"), nil)
	assert.Equal(t, "[2026-02-20, 2026-03-05]", cycle.String())
	assert.True(t, cycle.Contains(date("2026-02-25")))
	assert.Equal(t, 14, cycle.Len())
}

// =============================================================================
// COMPLETION EVALUATOR
// =============================================================================

func TestIsCompletedFor_DailyExactOnly(t *testing.T) {
	e := newEngine()
	tk := task("dishes", recurrence.Daily())
	log := doneOn("dishes", date("2026-02-10"))

	assert.True(t, e.IsCompletedFor(tk, date("2026-02-10"), log))
	assert.False(t, e.IsCompletedFor(tk, date("2026-02-11"), log))
	assert.False(t, e.IsCompletedFor(tk, date("2026-02-09"), log))
	assert.False(t, e.IsCompletedFor(tk, date("2026-02-10"), nil))
}

func TestIsCompletedFor_IntervalWindow(t *testing.T) {
	e := newEngine()
	tk := task("sheets", recurrence.Weekly(time.Friday, 1, 0))
	done := date("2026-02-03")
	log := doneOn("sheets", done)

	for i := 0; i < 7; i++ {
		assert.True(t, e.IsCompletedFor(tk, done.AddDays(i), log), "day +%d", i)
	}
	assert.False(t, e.IsCompletedFor(tk, done.AddDays(7), log))
	assert.False(t, e.IsCompletedFor(tk, done.AddDays(-1), log))
}

func TestIsCompletedFor_LongIntervalWindow(t *testing.T) {
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))
	done := date("2026-03-10")
	log := doneOn("oven", done)

	assert.True(t, e.IsCompletedFor(tk, done.AddDays(90), log))
	assert.False(t, e.IsCompletedFor(tk, done.AddDays(91), log))
}

func TestIsCompletedFor_OnceExact(t *testing.T) {
	e := newEngine()
	tk := task("gutters", recurrence.Once(date("2026-04-11")))
	log := doneOn("gutters", date("2026-04-11"))

	assert.True(t, e.IsCompletedFor(tk, date("2026-04-11"), log))
	assert.False(t, e.IsCompletedFor(tk, date("2026-04-12"), log))
}

// =============================================================================
// NEXT-DUE PROJECTOR
// =============================================================================

func TestDaysUntilDue(t *testing.T) {
	e := newEngine()
	tests := []struct {
		name  string
		task  recurrence.Task
		log   recurrence.CompletionLog
		today string
		want  int
	}{
		{"daily", task("dishes", recurrence.Daily()), nil, "2026-02-10", 0},
		{"once ahead", task("g", recurrence.Once(date("2026-02-20"))), nil, "2026-02-15", 5},
		{"once past", task("g", recurrence.Once(date("2026-02-20"))), nil, "2026-02-25", 0},
		{"once undated", task("g", recurrence.Once(recurrence.Date{})), nil, "2026-02-25", 0},
		{"fixed ahead", task("l", recurrence.EveryNDays(3)), doneOn("l", date("2026-02-10")), "2026-02-11", 2},
		{"fixed overdue", task("l", recurrence.EveryNDays(3)), doneOn("l", date("2026-02-10")), "2026-02-20", 0},
		{"biweekly today", task("c", recurrence.Weekly(time.Friday, 2, 0)), nil, "2026-02-06", 0},
		{"biweekly skips odd week", task("c", recurrence.Weekly(time.Friday, 2, 0)), nil, "2026-02-07", 13},
		{"biweekly after completion", task("c", recurrence.Weekly(time.Friday, 2, 0)), doneOn("c", date("2026-02-06")), "2026-02-07", 13},
		{"weekly completed early", task("s", recurrence.Weekly(time.Friday, 1, 0)), doneOn("s", date("2026-02-05")), "2026-02-05", 8},
		{"long fresh", task("o", recurrence.LongInterval(91, 14)), nil, "2026-02-01", 14},
		{"long overdue", task("o", recurrence.LongInterval(91, 14)), nil, "2026-03-01", 0},
		{"long after completion", task("o", recurrence.LongInterval(91, 14)), doneOn("o", date("2026-03-10")), "2026-03-11", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.DaysUntilDue(tt.task, tt.log, date(tt.today)))
		})
	}
}

func TestDaysUntilDue_WeeklyUnreachableFallsBack(t *testing.T) {
	// GIVEN: a weekly task whose anchor is far in the future
	e := newEngine()
	tk := recurrence.WithAnchor(task("rug", recurrence.Weekly(time.Friday, 1, 0)), date("2027-01-01"))

	// THEN: the bounded scan gives up with the interval length
	assert.Equal(t, 7, e.DaysUntilDue(tk, nil, date("2026-02-01")))
}

func TestDaysUntilDue_HugeMultiplicityIsBounded(t *testing.T) {
	// GIVEN: a weekly rotation far longer than a year
	e := newEngine()
	tk := task("rug", recurrence.Weekly(time.Monday, 1_000_000_000, 0))

	// WHEN: projecting a month after the epoch
	days := e.DaysUntilDue(tk, nil, date("2026-03-03"))

	// THEN: the rotation is clamped to a year; week 52 starts 2027-02-01
	assert.Equal(t, 335, days)
	assert.Equal(t, "2027-02-01", e.NextDueDate(tk, nil, date("2026-03-03")).String())
	assert.Equal(t, 7*recurrence.MaxWeekMultiplicity, recurrence.IntervalOf(tk.Frequency))
	assert.Equal(t, recurrence.MaxWeekMultiplicity, tk.Frequency.Normalized().Multiplicity)
}

func TestDaysUntilDue_WeeklyMatchesDailyScan(t *testing.T) {
	e := newEngine()
	tasks := []recurrence.Task{
		task("a", recurrence.Weekly(time.Friday, 1, 0)),
		task("b", recurrence.Weekly(time.Tuesday, 2, 1)),
		task("c", recurrence.Weekly(time.Sunday, 3, 2)),
		recurrence.WithAnchor(task("d", recurrence.Weekly(time.Friday, 2, 0)), date("2026-03-04")),
	}
	logs := []recurrence.CompletionLog{
		nil,
		doneOn("a", date("2026-02-12")),
		doneOn("b", date("2026-02-17")),
		doneOn("c", date("2026-02-20")),
		doneOn("d", date("2026-03-04")),
	}

	for _, tk := range tasks {
		for _, log := range logs {
			for d := 0; d < 60; d++ {
				today := epoch.AddDays(d)
				want := scanDaysUntil(e, tk, log, today)
				assert.Equal(t, want, e.DaysUntilDue(tk, log, today), "%s on %s", tk.ID, today)
			}
		}
	}
}

// scanDaysUntil is the day-by-day reference projection.
func scanDaysUntil(e recurrence.Engine, tk recurrence.Task, log recurrence.CompletionLog, today recurrence.Date) int {
	interval := recurrence.IntervalOf(tk.Frequency)
	for i := 0; i <= 2*interval; i++ {
		if e.IsDueOn(tk, today.AddDays(i), log) {
			return i
		}
	}
	return interval
}

func TestNextDueDate(t *testing.T) {
	e := newEngine()
	tk := task("oven", recurrence.LongInterval(91, 14))

	assert.Equal(t, "2026-02-15", e.NextDueDate(tk, nil, epoch).String())
}

// =============================================================================
// MALFORMED INPUT
// =============================================================================

func TestMalformedFrequencies_AreTotal(t *testing.T) {
	e := newEngine()

	// Weekday 9 folds onto Tuesday.
	tue := task("t", recurrence.Weekly(time.Weekday(9), 1, 0))
	assert.True(t, e.IsDueOn(tue, date("2026-02-03"), nil))

	// Zero-day custom falls back to weekly cadence after the nudge.
	zero := task("z", recurrence.Custom(0, 14))
	assert.Equal(t, []string{"2026-02-15", "2026-02-22"}, dueDates(e, zero, epoch, 22, nil))

	// Unknown kinds recur every 7 days from the epoch.
	unknown := task("u", recurrence.Frequency{Kind: "fortnightly"})
	assert.Equal(t, []string{"2026-02-01", "2026-02-08"}, dueDates(e, unknown, epoch, 14, nil))

	// Offset outside the rotation folds into range.
	off := task("o", recurrence.Weekly(time.Friday, 2, 3))
	assert.True(t, e.IsDueOn(off, date("2026-02-13"), nil))
}

func TestFrequencyNormalized(t *testing.T) {
	assert.Equal(t, recurrence.Weekly(time.Tuesday, 2, 1), recurrence.Weekly(time.Weekday(9), 2, 3).Normalized())
	assert.Equal(t, recurrence.Weekly(time.Sunday, 1, 0), recurrence.Weekly(time.Sunday, 0, 5).Normalized())
	assert.Equal(t, recurrence.Custom(7, 0), recurrence.Custom(-3, -1).Normalized())
	assert.Equal(t, recurrence.Daily(), recurrence.Daily().Normalized())
}

func TestEpochIsConfiguration(t *testing.T) {
	tk := task("cabinets", recurrence.Weekly(time.Friday, 2, 0))

	a := recurrence.New(date("2026-02-01"))
	b := recurrence.New(date("2026-02-08"))

	assert.True(t, a.IsDueOn(tk, date("2026-02-20"), nil))
	assert.False(t, b.IsDueOn(tk, date("2026-02-20"), nil))
	assert.True(t, b.IsDueOn(tk, date("2026-02-13"), nil))
}

func TestTasksForDate_PreservesOrder(t *testing.T) {
	e := newEngine()
	tasks := []recurrence.Task{
		task("dishes", recurrence.Daily()),
		task("oven", recurrence.LongInterval(91, 14)),
		task("cabinets", recurrence.Weekly(time.Friday, 2, 0)),
		task("litter", recurrence.EveryNDays(3)),
	}

	got := e.TasksForDate(tasks, date("2026-02-06"), nil)
	require.Len(t, got, 2)
	assert.Equal(t, recurrence.TaskID("dishes"), got[0].ID)
	assert.Equal(t, recurrence.TaskID("cabinets"), got[1].ID)
}
