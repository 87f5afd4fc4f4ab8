// Package recurrence computes the next occurrence of a recurring task.
// All arithmetic is calendar-aware: time-of-day is preserved and monthly
// steps clamp the day to the length of the target month.
package recurrence

import (
	"time"

	"todocli/internal/model"
)

// NextDue returns the due date of the next occurrence after current for the
// given interval. The second return value is false when the interval is none
// or unrecognized, meaning there is no next occurrence.
func NextDue(current time.Time, interval model.RecurrenceInterval) (time.Time, bool) {
	switch interval {
	case model.RecurrenceDaily:
		return current.AddDate(0, 0, 1), true
	case model.RecurrenceWeekly:
		return current.AddDate(0, 0, 7), true
	case model.RecurrenceMonthly:
		return addMonthClamped(current), true
	default:
		return time.Time{}, false
	}
}

// addMonthClamped advances t by one calendar month. time.AddDate normalizes
// overflow (Jan 31 + 1 month = Mar 3), so the day is clamped by hand to the
// last valid day of the target month instead.
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(year, month, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month: day zero of the
// following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
