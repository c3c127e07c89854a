package recurrence

import "time"

// =============================================================================
// PERIOD - One recurrence cycle (or any closed run of days)
// =============================================================================

// Period is a closed range of days [Start, End].
//
// For a recurring task the cycle containing a date is a Period whose Start
// doubles as the period key that overrides are stored under:
//   - every 14 days from 2026-02-06: [2026-02-20, 2026-03-05]
//   - 91 days from a 2026-03-01 completion: [2026-05-31, 2026-08-29]
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns all days in the period.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Len is the number of days in the period.
func (p Period) Len() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// MonthPeriod covers a calendar month.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}
