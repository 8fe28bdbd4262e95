package core

import (
	"fmt"
	"time"
)

// NextOccurrence returns the occurrence that follows date for the given
// recurrence type. The second return value is false for RecurrenceNone,
// which is terminal.
//
// Monthly keeps the day of month, clamped to the next month's last valid
// day (Jan 31 -> Feb 28/29). Yearly keeps month and day, clamped for
// Feb 29 anchors landing on a non-leap year. All branches are total for
// any valid calendar date.
func NextOccurrence(date time.Time, recurrence RecurrenceType) (time.Time, bool) {
	switch recurrence {
	case RecurrenceDaily:
		return date.AddDate(0, 0, 1), true
	case RecurrenceWeekly:
		return date.AddDate(0, 0, 7), true
	case RecurrenceMonthly:
		next := firstOfMonth(date).AddDate(0, 1, 0)
		return clampDay(next, date.Day()), true
	case RecurrenceYearly:
		next := time.Date(date.Year()+1, date.Month(), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
		return clampDay(next, date.Day()), true
	default:
		return time.Time{}, false
	}
}

// RecurrenceLabel renders the human description of a recurrence rule
// anchored at the given date, e.g. "Weekly on Tuesday", "Monthly on the
// 3rd", "Yearly on March 15".
func RecurrenceLabel(anchor time.Time, recurrence RecurrenceType) string {
	switch recurrence {
	case RecurrenceDaily:
		return "Daily"
	case RecurrenceWeekly:
		return "Weekly on " + anchor.Weekday().String()
	case RecurrenceMonthly:
		return fmt.Sprintf("Monthly on the %s", Ordinal(anchor.Day()))
	case RecurrenceYearly:
		return fmt.Sprintf("Yearly on %s %d", anchor.Month().String(), anchor.Day())
	default:
		return "Does not repeat"
	}
}

// Ordinal returns n with its English ordinal suffix. 11th-13th take
// "th" regardless of the last digit.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// clampDay sets the day of month on t, clamped to t's month length.
func clampDay(t time.Time, day int) time.Time {
	last := daysInMonth(t.Year(), t.Month())
	if day > last {
		day = last
	}
	return time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
