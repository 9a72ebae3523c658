package domain

import (
	"slices"
	"time"
)

// Priority is a task's urgency level.
type Priority string

const (
	// PriorityLow marks tasks that can slip.
	PriorityLow Priority = "low"
	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"
	// PriorityHigh marks tasks that must not slip.
	PriorityHigh Priority = "high"
)

// ValidPriority reports whether p is a recognized priority value.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// RecurrenceType determines how a task repeats across calendar dates.
type RecurrenceType string

const (
	// RecurrenceOneTime means the task occurs once, on its due date.
	RecurrenceOneTime RecurrenceType = "one-time"
	// RecurrenceDaily means the task occurs every day from its base date.
	RecurrenceDaily RecurrenceType = "daily"
	// RecurrenceWeekly means the task occurs on selected weekdays.
	RecurrenceWeekly RecurrenceType = "weekly"
	// RecurrenceMonthly means the task occurs on one day of each month.
	RecurrenceMonthly RecurrenceType = "monthly"
	// RecurrenceYearly means the task occurs on the month-day of its due date.
	RecurrenceYearly RecurrenceType = "yearly"
)

// ValidRecurrenceType reports whether t is a recognized recurrence type.
func ValidRecurrenceType(t RecurrenceType) bool {
	switch t {
	case RecurrenceOneTime, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Recurrence describes a task's repetition rule.
type Recurrence struct {
	Type RecurrenceType `json:"type"`
	// DaysOfWeek holds weekday numbers 0 (Sunday) through 6 (Saturday).
	// Only meaningful for weekly recurrence.
	DaysOfWeek []int `json:"days_of_week,omitempty"`
	// DayOfMonth is 1-31. Only meaningful for monthly recurrence. Months
	// shorter than the value never activate (no end-of-month rollover).
	DayOfMonth *int `json:"day_of_month,omitempty"`
	// EndDate is the last date (YYYY-MM-DD, inclusive) the rule applies.
	// Empty means the rule never ends.
	EndDate string `json:"end_date,omitempty"`
}

// Task represents one to-do item, potentially recurring.
type Task struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	// Date is the date string (YYYY-MM-DD) the task was created for.
	// It anchors legacy non-recurring tasks and the start of recurrence.
	Date        string `json:"date"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	// Done is the lifetime completion flag, meaningful for non-recurring tasks.
	Done bool `json:"done"`
	// CompletedOn holds the dates (YYYY-MM-DD, sorted) the task was
	// completed on, tracking per-occurrence completion for recurring tasks.
	CompletedOn []string `json:"completed_on,omitempty"`
	Priority    Priority `json:"priority"`
	// Labels are ordered category tags; clients treat the first as "the" category.
	Labels []string `json:"labels,omitempty"`
	// Order is the manual sort position among the owner's tasks.
	Order int        `json:"order"`
	DueAt *time.Time `json:"due_at,omitempty"`
	// CarryForward keeps an unfinished task appearing on every date after
	// its base date until completed. Predates recurrence rules.
	CarryForward bool        `json:"carry_forward,omitempty"`
	Recurrence   *Recurrence `json:"recurrence,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// EffectiveRecurrence returns the task's recurrence rule, defaulting to
// daily for records written before recurrence existed.
func (t *Task) EffectiveRecurrence() Recurrence {
	if t.Recurrence == nil {
		return Recurrence{Type: RecurrenceDaily}
	}
	r := *t.Recurrence
	if r.Type == "" {
		r.Type = RecurrenceDaily
	}
	return r
}

// CompletedOnDate reports whether date is in the per-occurrence completion set.
func (t *Task) CompletedOnDate(date string) bool {
	return slices.Contains(t.CompletedOn, date)
}

// ToggleCompletedOn flips membership of date in the per-occurrence
// completion set, keeping the set sorted. Returns the new membership state.
func (t *Task) ToggleCompletedOn(date string) bool {
	if i := slices.Index(t.CompletedOn, date); i >= 0 {
		t.CompletedOn = slices.Delete(t.CompletedOn, i, i+1)
		return false
	}
	t.CompletedOn = append(t.CompletedOn, date)
	slices.Sort(t.CompletedOn)
	return true
}

// SetCompletedOn sets membership of date in the per-occurrence completion set.
func (t *Task) SetCompletedOn(date string, completed bool) {
	if completed == t.CompletedOnDate(date) {
		return
	}
	t.ToggleCompletedOn(date)
}
