// Package activity implements the temporal edit-activity aggregation core:
// the parallel fold that builds the per-user, per-day and latest-name
// indexes from the event stream, and the rolling-window queries that turn
// those indexes into daily and per-user statistics.
package activity

import (
	"fmt"
	"time"
)

// Day is a UTC calendar day, counted in whole days since the Unix epoch.
// The integer representation keeps the day index ordered and makes window
// arithmetic a plain subtraction.
type Day int32

const secondsPerDay = 86400

// dayMonthLayout formats a day as "31.12." for the mapped-days report column.
const dayMonthLayout = "02.01."

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	secs := t.Unix()

	days := secs / secondsPerDay
	if secs < 0 && secs%secondsPerDay != 0 {
		days--
	}

	return Day(days)
}

// ParseDay parses an ISO 8601 date ("2006-01-02").
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}

	return DayOf(t), nil
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// String formats the day as an ISO 8601 date.
func (d Day) String() string {
	return d.Time().Format(time.DateOnly)
}

// DayMonth formats the day as "31.12." (day.month.).
func (d Day) DayMonth() string {
	return d.Time().Format(dayMonthLayout)
}

// ClampDay limits d to the closed range [lo, hi].
func ClampDay(d, lo, hi Day) Day {
	if d < lo {
		return lo
	}

	if d > hi {
		return hi
	}

	return d
}
