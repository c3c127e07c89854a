/*
frequency.go - Recurrence classes and the interval resolver

PURPOSE:
  Frequency is the tagged variant that says how a task recurs. Records
  arrive from storage with loose string tags ("biweekly", "custom:10");
  the factory package decodes those once, so nothing in this package
  parses strings.

RECURRENCE CLASSES:
  Daily          due every day
  FixedInterval  due once at lastDone + N (no history: the epoch itself)
  Weekly         day-of-week anchored, every 1/2/3 weeks, rotation picked
                 by WeekOffset against the epoch's week numbering
  LongInterval   monthly and longer, measured from last completion;
                 a fresh task is first due at epoch + NudgeDays
  Custom         user-defined interval, same rules as LongInterval
  Once           due on Date only

TOTALITY:
  Malformed values never fail. Non-positive day counts and unknown kinds
  resolve to FallbackInterval; out-of-range weekday and offset values are
  folded into range. Week multiplicity is clamped to [1, MaxWeekMultiplicity].

SEE ALSO:
  - engine.go: uses IntervalOf and the normalized accessors
  - factory/task.go: string tag decoding
*/
package recurrence

import "time"

// Kind discriminates Frequency variants.
type Kind string

const (
	KindDaily         Kind = "daily"
	KindFixedInterval Kind = "fixed_interval"
	KindWeekly        Kind = "weekly"
	KindLongInterval  Kind = "long_interval"
	KindCustom        Kind = "custom"
	KindOnce          Kind = "once"
)

const (
	// FallbackInterval is used for unknown kinds and non-positive day counts.
	FallbackInterval = 7

	// DefaultNudgeDays delays a fresh long-interval task past the epoch.
	DefaultNudgeDays = 14

	// MaxWeekMultiplicity is the longest weekly rotation, one year.
	MaxWeekMultiplicity = 52
)

// Frequency describes how a task recurs. Only the fields relevant to Kind are read.
type Frequency struct {
	Kind Kind

	// FixedInterval, LongInterval, Custom
	Days int

	// Weekly
	Weekday      time.Weekday
	Multiplicity int
	WeekOffset   int

	// LongInterval, Custom
	NudgeDays int

	// Once
	Date Date
}

// Constructors

func Daily() Frequency { return Frequency{Kind: KindDaily} }

func EveryNDays(n int) Frequency { return Frequency{Kind: KindFixedInterval, Days: n} }

func Weekly(dow time.Weekday, multiplicity, weekOffset int) Frequency {
	return Frequency{Kind: KindWeekly, Weekday: dow, Multiplicity: multiplicity, WeekOffset: weekOffset}
}

func LongInterval(days, nudgeDays int) Frequency {
	return Frequency{Kind: KindLongInterval, Days: days, NudgeDays: nudgeDays}
}

func Custom(days, nudgeDays int) Frequency {
	return Frequency{Kind: KindCustom, Days: days, NudgeDays: nudgeDays}
}

func Once(date Date) Frequency { return Frequency{Kind: KindOnce, Date: date} }

// =============================================================================
// INTERVAL RESOLVER
// =============================================================================

// IntervalOf maps a frequency to its canonical day count.
// Once is 0; anything unrecognized or malformed is FallbackInterval.
func IntervalOf(f Frequency) int {
	switch f.Kind {
	case KindOnce:
		return 0
	case KindDaily:
		return 1
	case KindWeekly:
		return 7 * f.multiplicity()
	case KindFixedInterval, KindLongInterval, KindCustom:
		if f.Days <= 0 {
			return FallbackInterval
		}
		return f.Days
	default:
		return FallbackInterval
	}
}

// IsRecurring is false only for Once.
func (f Frequency) IsRecurring() bool { return f.Kind != KindOnce }

// Normalized folds out-of-range fields the way the engine reads them:
// weekday mod 7, multiplicity in [1, MaxWeekMultiplicity], offset mod multiplicity,
// non-positive day counts to FallbackInterval, negative nudges to 0.
func (f Frequency) Normalized() Frequency {
	switch f.Kind {
	case KindWeekly:
		f.Weekday = f.weekday()
		f.Multiplicity = f.multiplicity()
		f.WeekOffset = f.weekOffset()
	case KindFixedInterval, KindLongInterval, KindCustom:
		f.Days = IntervalOf(f)
		f.NudgeDays = f.nudgeDays()
	}
	return f
}

func (f Frequency) multiplicity() int {
	switch {
	case f.Multiplicity < 1:
		return 1
	case f.Multiplicity > MaxWeekMultiplicity:
		return MaxWeekMultiplicity
	}
	return f.Multiplicity
}

func (f Frequency) weekday() time.Weekday {
	return time.Weekday(floorMod(int(f.Weekday), 7))
}

func (f Frequency) weekOffset() int {
	return floorMod(f.WeekOffset, f.multiplicity())
}

func (f Frequency) nudgeDays() int {
	if f.NudgeDays < 0 {
		return 0
	}
	return f.NudgeDays
}
