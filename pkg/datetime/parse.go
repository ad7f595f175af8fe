// Package datetime provides calendar date utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/save-smarter/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout

	day = 24 * time.Hour
)

// ParseDate parses a YYYY-MM-DD string into a date at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s: %w", value, DateLayout, err)
	}
	return t, nil
}

// MustParseDate parses a date string and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize drops the clock and location of t, keeping its calendar date at
// UTC midnight.
func Normalize(t time.Time) time.Time {
	year, month, dayOfMonth := t.Date()
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// Format renders t in DateLayout.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays returns the date offset by the given number of days.
func AddDays(t time.Time, days int) time.Time {
	return Normalize(t).AddDate(0, 0, days)
}

// DaysBetween returns the number of whole days from start to end, negative
// when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(Normalize(end).Sub(Normalize(start)) / day)
}

// MonthsBetween returns the calendar month delta from one date to another,
// ignoring the day of month: 2026-10-31 to 2026-11-01 is one month.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*constants.MonthsPerYear + int(to.Month()) - int(from.Month())
}

// CountSteps steps from start by stepDays until the date reaches or passes
// end and returns how many steps were taken. A step landing exactly on end is
// not counted. Non-positive stepDays yields zero.
func CountSteps(start, end time.Time, stepDays int) int {
	if stepDays <= 0 {
		return 0
	}
	date := Normalize(start)
	stop := Normalize(end)
	count := 0
	for date.Before(stop) {
		count++
		date = date.AddDate(0, 0, stepDays)
	}
	return count
}
