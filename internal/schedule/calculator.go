// Package schedule computes occurrence dates for recurring rules.
//
// All functions work on civil dates: a time.Time at UTC midnight. Callers holding
// timestamps should pass them through DateOf first; the functions here do so anyway.
// Nothing in this package keeps state, so it is safe for concurrent use.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DefaultMaxSearchSteps bounds FirstOccurrenceAfter when the caller passes no limit.
const DefaultMaxSearchSteps = 10000

var (
	ErrMissingDate       = errors.New("schedule: date is required")
	ErrMissingPeriod     = errors.New("schedule: period is required")
	ErrInvalidPeriod     = errors.New("schedule: invalid period")
	ErrScheduleUnbounded = errors.New("schedule: occurrence search exceeded its step limit")
)

// Date builds a civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the clock part of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Advance returns the occurrence one period after base. Month and year steps clamp
// to the last day of the target month, so Jan 31 advances monthly to Feb 28 (or 29).
func Advance(base time.Time, p Period) (time.Time, error) {
	if base.IsZero() {
		return time.Time{}, ErrMissingDate
	}
	base = DateOf(base)

	switch p {
	case PeriodDaily:
		return base.AddDate(0, 0, 1), nil
	case PeriodWeekly:
		return base.AddDate(0, 0, 7), nil
	case PeriodMonthly:
		return addMonths(base, 1), nil
	case PeriodYearly:
		return addMonths(base, 12), nil
	case "":
		return time.Time{}, ErrMissingPeriod
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, string(p))
	}
}

// FirstOccurrenceAfter walks start, Advance(start), ... and returns the first date
// strictly after reference. It gives up with ErrScheduleUnbounded after maxSteps
// advances; maxSteps <= 0 means DefaultMaxSearchSteps.
func FirstOccurrenceAfter(reference, start time.Time, p Period, maxSteps int) (time.Time, error) {
	if start.IsZero() || reference.IsZero() {
		return time.Time{}, ErrMissingDate
	}
	if p == "" {
		return time.Time{}, ErrMissingPeriod
	}
	if !p.Valid() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, string(p))
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSearchSteps
	}

	reference = DateOf(reference)
	candidate := DateOf(start)
	for steps := 0; !candidate.After(reference); steps++ {
		if steps >= maxSteps {
			return time.Time{}, fmt.Errorf("%w: %d steps from %s", ErrScheduleUnbounded, maxSteps, start.Format(time.DateOnly))
		}
		next, err := Advance(candidate, p)
		if err != nil {
			return time.Time{}, err
		}
		candidate = next
	}
	return candidate, nil
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := Date(y, m+time.Month(months), 1)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return Date(first.Year(), first.Month(), d)
}

func daysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}
