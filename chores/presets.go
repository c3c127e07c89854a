/*
presets.go - Household frequency presets

PURPOSE:
  The household app stores frequencies as short tags ("biweekly",
  "3month", "custom:10"). This file owns the table that maps those tags to
  recurrence.Frequency values and back, plus display labels and colors.

TAGS:
  daily                           Daily
  3day                            FixedInterval(3)
  weekly / biweekly / triweekly   Weekly(dow, 1|2|3, weekOffset)
  monthly 2month 3month 6month    LongInterval(30|60|91|182, nudge)
  annual 3year                    LongInterval(365|1095, nudge)
  once                            Once(onceDate)
  custom:N                        Custom(N, nudge)
  fixed:N                         FixedInterval(N) for N != 3
  weeks:N                         Weekly(dow, N, weekOffset) for N > 3

  Unknown tags and unparsable counts resolve to a 7-day Custom frequency.

SEE ALSO:
  - factory/task.go: record decoding uses PresetFrequency
  - recurrence/frequency.go: the variant type
*/
package chores

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// Tag is a stored frequency tag.
type Tag string

const (
	TagDaily     Tag = "daily"
	TagThreeDay  Tag = "3day"
	TagWeekly    Tag = "weekly"
	TagBiweekly  Tag = "biweekly"
	TagTriweekly Tag = "triweekly"
	TagMonthly   Tag = "monthly"
	TagTwoMonth  Tag = "2month"
	TagQuarterly Tag = "3month"
	TagSixMonth  Tag = "6month"
	TagAnnual    Tag = "annual"
	TagThreeYear Tag = "3year"
	TagOnce      Tag = "once"

	customPrefix = "custom:"
	fixedPrefix  = "fixed:"
	weeksPrefix  = "weeks:"
)

// longIntervals are the day counts behind the long-interval presets.
var longIntervals = map[Tag]int{
	TagMonthly:   30,
	TagTwoMonth:  60,
	TagQuarterly: 91,
	TagSixMonth:  182,
	TagAnnual:    365,
	TagThreeYear: 1095,
}

var weeklyMultiplicity = map[Tag]int{
	TagWeekly:    1,
	TagBiweekly:  2,
	TagTriweekly: 3,
}

// PresetOptions lists the preset tags offered when creating a task, in display order.
var PresetOptions = []Tag{
	TagDaily, TagThreeDay, TagWeekly, TagBiweekly, TagTriweekly, TagMonthly,
	TagTwoMonth, TagQuarterly, TagSixMonth, TagAnnual, TagThreeYear,
}

var presetLabels = map[Tag]string{
	TagDaily:     "Daily",
	TagThreeDay:  "Every 3 Days",
	TagWeekly:    "Weekly",
	TagBiweekly:  "Every 2 Weeks",
	TagTriweekly: "Every 3 Weeks",
	TagMonthly:   "Monthly",
	TagTwoMonth:  "Every 2 Months",
	TagQuarterly: "Every 3 Months",
	TagSixMonth:  "Every 6 Months",
	TagAnnual:    "Annually",
	TagThreeYear: "Every 3 Years",
	TagOnce:      "One-time",
}

var presetColors = map[Tag]string{
	TagDaily:     "#E8C547",
	TagThreeDay:  "#F4A261",
	TagWeekly:    "#7ECFC0",
	TagBiweekly:  "#9DC97A",
	TagTriweekly: "#74C0FC",
	TagMonthly:   "#B09EE8",
	TagTwoMonth:  "#F0A0C0",
	TagQuarterly: "#90B8D8",
	TagSixMonth:  "#D4B84A",
	TagAnnual:    "#D4A5A5",
	TagThreeYear: "#aaa",
}

// FrequencyFields carries the loose per-record fields that accompany a tag.
// Nil pointers mean the field was absent in the stored record.
type FrequencyFields struct {
	DayOfWeek  *int
	WeekOffset *int
	NudgeDays  *int
	OnceDate   recurrence.Date
}

// PresetFrequency resolves a stored tag and its companion fields.
// Missing dow and weekOffset default to 0, missing nudgeDays to
// recurrence.DefaultNudgeDays.
func PresetFrequency(tag Tag, fields FrequencyFields) recurrence.Frequency {
	nudge := intOr(fields.NudgeDays, recurrence.DefaultNudgeDays)
	dow := time.Weekday(intOr(fields.DayOfWeek, 0))
	offset := intOr(fields.WeekOffset, 0)

	switch tag {
	case TagDaily:
		return recurrence.Daily()
	case TagThreeDay:
		return recurrence.EveryNDays(3)
	case TagOnce:
		return recurrence.Once(fields.OnceDate)
	}
	if mult, ok := weeklyMultiplicity[tag]; ok {
		return recurrence.Weekly(dow, mult, offset)
	}
	if days, ok := longIntervals[tag]; ok {
		return recurrence.LongInterval(days, nudge)
	}

	s := string(tag)
	switch {
	case strings.HasPrefix(s, fixedPrefix):
		return recurrence.EveryNDays(countOr(s[len(fixedPrefix):], recurrence.FallbackInterval))
	case strings.HasPrefix(s, weeksPrefix):
		return recurrence.Weekly(dow, countOr(s[len(weeksPrefix):], 1), offset)
	case strings.HasPrefix(s, customPrefix):
		return recurrence.Custom(countOr(s[len(customPrefix):], recurrence.FallbackInterval), nudge)
	default:
		return recurrence.Custom(recurrence.FallbackInterval, nudge)
	}
}

// FrequencyTag is the inverse of PresetFrequency.
func FrequencyTag(f recurrence.Frequency) Tag {
	switch f.Kind {
	case recurrence.KindDaily:
		return TagDaily
	case recurrence.KindOnce:
		return TagOnce
	case recurrence.KindFixedInterval:
		if f.Days == 3 {
			return TagThreeDay
		}
		return Tag(fmt.Sprintf("%s%d", fixedPrefix, recurrence.IntervalOf(f)))
	case recurrence.KindWeekly:
		mult := recurrence.IntervalOf(f) / 7
		for tag, m := range weeklyMultiplicity {
			if m == mult {
				return tag
			}
		}
		return Tag(fmt.Sprintf("%s%d", weeksPrefix, mult))
	case recurrence.KindLongInterval:
		for tag, days := range longIntervals {
			if days == f.Days {
				return tag
			}
		}
	}
	return Tag(fmt.Sprintf("%s%d", customPrefix, recurrence.IntervalOf(f)))
}

// Label is the human-readable frequency name.
func Label(f recurrence.Frequency) string {
	tag := FrequencyTag(f)
	if label, ok := presetLabels[tag]; ok {
		return label
	}
	n := recurrence.IntervalOf(f)
	if f.Kind == recurrence.KindWeekly {
		return fmt.Sprintf("Every %d Weeks", n/7)
	}
	if n == 1 {
		return "Every 1 day"
	}
	return fmt.Sprintf("Every %d days", n)
}

// Color is the legend color for a frequency; custom intervals share a neutral one.
func Color(f recurrence.Frequency) string {
	if c, ok := presetColors[FrequencyTag(f)]; ok {
		return c
	}
	return "#888"
}

// UsesNudge reports whether the frequency reads NudgeDays.
func UsesNudge(f recurrence.Frequency) bool {
	return f.Kind == recurrence.KindLongInterval || f.Kind == recurrence.KindCustom
}

// UsesWeekday reports whether the frequency reads Weekday and WeekOffset.
func UsesWeekday(f recurrence.Frequency) bool {
	return f.Kind == recurrence.KindWeekly
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func countOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
