package recurrence

import (
	"time"
)

// =============================================================================
// DATE - Calendar day abstraction (every comparison is day-granular)
// =============================================================================

// DateLayout is the wire format for dates in records and period keys.
const DateLayout = "2006-01-02"

// Date is a calendar day pinned to UTC midnight.
// The zero value means "no date" (e.g. a task that was never completed).
type Date struct {
	t time.Time
}

// NewDate returns the date for year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf strips the time of day from t, keeping t's calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY-MM-DD". Corrupt or empty input yields (Date{}, false).
func ParseDate(s string) (Date, bool) {
	if s == "" {
		return Date{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

// MustParseDate is ParseDate for literals in tests and defaults.
func MustParseDate(s string) Date {
	d, ok := ParseDate(s)
	if !ok {
		panic("recurrence: invalid date literal " + s)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysBetween returns the signed number of whole days from a to b.
func DaysBetween(a, b Date) int {
	return int(b.dayNumber() - a.dayNumber())
}

// dayNumber counts days since the Unix epoch; exact because dates sit on UTC midnight.
func (d Date) dayNumber() int64 {
	return d.t.Unix() / 86400
}

// floorDiv and floorMod round toward negative infinity so dates before the
// epoch land in negative weeks instead of folding onto week zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// StartOfMonth and EndOfMonth bound a calendar month.
func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }
func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month+1, 1).AddDays(-1)
}
