package domain

import (
	"slices"
	"time"

	"github.com/momentumapp/momentum-server/internal/errors"
)

// DateLayout is the wire format for calendar dates. Dates are
// timezone-naive strings; parsing yields midnight UTC, which is only ever
// used for calendar arithmetic (weekday, day-of-month), never for clocks.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
// Malformed or out-of-range dates return an InvalidDate error.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.InvalidDatef("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

// FormatDate renders t as a YYYY-MM-DD date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Occurrence is the resolver's answer for one task on one calendar date.
type Occurrence struct {
	// Active means the task should be shown and counted on the date.
	Active bool `json:"active"`
	// Done means the task is completed for that specific date occurrence.
	Done bool `json:"done"`
}

// Resolve decides whether a task is active on the given date, and whether
// it is done for that date's occurrence. It is the single source of truth
// for both task listing and statistics.
//
// A task can become active through any of three paths, combined as a union:
//
//  1. Exact match on its base date (always, regardless of recurrence type).
//  2. Legacy carry-forward: unfinished carry-forward tasks reappear on
//     every date after their base date until completed.
//  3. Its recurrence rule. Records with no recurrence default to daily.
//
// Completion for the date prefers the per-date completion set whenever that
// set is non-empty; the lifetime Done flag only answers for the exact
// base-date occurrence of tasks with no per-date records.
func Resolve(t *Task, day string) (Occurrence, error) {
	d, err := ParseDate(day)
	if err != nil {
		return Occurrence{}, err
	}

	hasBase := t.Date != ""
	var base time.Time
	if hasBase {
		base, err = ParseDate(t.Date)
		if err != nil {
			return Occurrence{}, err
		}
		// Never active before the base date.
		if d.Before(base) {
			return Occurrence{}, nil
		}
	}

	rec := t.EffectiveRecurrence()
	if rec.EndDate != "" {
		end, err := ParseDate(rec.EndDate)
		if err != nil {
			return Occurrence{}, err
		}
		// Never active after the rule's end date.
		if d.After(end) {
			return Occurrence{}, nil
		}
	}

	exact := hasBase && day == t.Date

	active := exact

	// Legacy carry-forward: by definition not yet done.
	if !active && t.CarryForward && !t.Done && hasBase && d.After(base) {
		active = true
	}

	if !active {
		switch rec.Type {
		case RecurrenceOneTime:
			// Without a due date the base-date rule above already covers it.
			active = t.DueAt != nil && FormatDate(t.DueAt.UTC()) == day
		case RecurrenceDaily:
			active = !hasBase || !d.Before(base)
		case RecurrenceWeekly:
			active = slices.Contains(rec.DaysOfWeek, int(d.Weekday()))
		case RecurrenceMonthly:
			active = rec.DayOfMonth != nil && d.Day() == *rec.DayOfMonth
		case RecurrenceYearly:
			// Year-independent month-day comparison. A Feb 29 due date
			// simply never matches in non-leap years.
			active = t.DueAt != nil &&
				t.DueAt.UTC().Month() == d.Month() &&
				t.DueAt.UTC().Day() == d.Day()
		}
	}

	if !active {
		return Occurrence{}, nil
	}

	done := false
	switch {
	case len(t.CompletedOn) > 0:
		done = t.CompletedOnDate(day)
	case exact:
		done = t.Done
	}

	return Occurrence{Active: true, Done: done}, nil
}
