// Package timeutil provides calendar-day utilities for StudySpark.
// Streaks are counted in whole UTC days, so all helpers normalize to
// midnight UTC before comparing. No external dependencies - uses only
// standard library.
package timeutil

import (
	"fmt"
	"time"
)

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	return DateOf(time.Now().UTC())
}

// DateOf truncates a time to midnight UTC, discarding the time of day.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Date creates a midnight-UTC date from its components.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// DaysBetween returns the number of whole calendar days from a to b.
// Positive when b is after a, negative when b is before a.
// AddDate is used instead of dividing by 24h so the result stays exact
// across leap days.
func DaysBetween(a, b time.Time) int {
	from := DateOf(a)
	to := DateOf(b)

	if from.Equal(to) {
		return 0
	}

	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}

	days := 0
	for from.Before(to) {
		from = from.AddDate(0, 0, 1)
		days++
	}
	return days * sign
}

// NextDay returns the calendar day after the given date.
func NextDay(t time.Time) time.Time {
	return DateOf(t).AddDate(0, 0, 1)
}

// FormatDate formats a time as "2006-01-02".
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMinutes renders a minute total as "H hours and M minutes".
// The fractional remainder is truncated, not rounded.
func FormatMinutes(totalMinutes float64) string {
	whole := int(totalMinutes)
	if whole < 0 {
		whole = 0
	}
	return fmt.Sprintf("%d hours and %d minutes", whole/60, whole%60)
}

// MinutesBetween returns the elapsed time from start to end in fractional
// minutes. Negative spans are clamped to zero; the caller decides whether
// to treat them as an anomaly.
func MinutesBetween(start, end time.Time) (minutes float64, clamped bool) {
	d := end.Sub(start)
	if d < 0 {
		return 0, true
	}
	return d.Minutes(), false
}

// ParseClock parses a "HH:MM" wall-clock string and validates its range.
func ParseClock(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("timeutil: invalid clock %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("timeutil: clock %q out of range", s)
	}
	return hour, minute, nil
}
