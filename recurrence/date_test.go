package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

func TestParseDate(t *testing.T) {
	d, ok := recurrence.ParseDate("2026-02-28")
	assert.True(t, ok)
	assert.Equal(t, "2026-02-28", d.String())
	assert.Equal(t, time.Saturday, d.Weekday())

	for _, bad := range []string{"", "2026-02-30", "02/28/2026", "2026-2-28T00:00"} {
		d, ok := recurrence.ParseDate(bad)
		assert.False(t, ok, bad)
		assert.True(t, d.IsZero(), bad)
	}
}

func TestDateOf_StripsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2026, time.March, 8, 23, 30, 0, 0, loc)

	assert.Equal(t, "2026-03-08", recurrence.DateOf(late).String())
}

func TestDaysBetween(t *testing.T) {
	a := recurrence.MustParseDate("2026-02-01")

	assert.Equal(t, 0, recurrence.DaysBetween(a, a))
	assert.Equal(t, 28, recurrence.DaysBetween(a, recurrence.MustParseDate("2026-03-01")))
	assert.Equal(t, -3, recurrence.DaysBetween(a, recurrence.MustParseDate("2026-01-29")))
	assert.Equal(t, 365, recurrence.DaysBetween(a, a.AddDays(365)))
}

func TestPeriod(t *testing.T) {
	p := recurrence.MonthPeriod(2026, time.February)

	assert.Equal(t, "[2026-02-01, 2026-02-28]", p.String())
	assert.Len(t, p.Days(), 28)
	assert.Equal(t, 28, p.Len())
	assert.True(t, p.Contains(recurrence.MustParseDate("2026-02-14")))
	assert.False(t, p.Contains(recurrence.MustParseDate("2026-03-01")))
}
