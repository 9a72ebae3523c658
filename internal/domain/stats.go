package domain

import (
	"slices"
	"time"
)

// Stats period bounds. Requests outside the range are clamped, not rejected.
const (
	MinStatsPeriodDays     = 1
	MaxStatsPeriodDays     = 90
	DefaultStatsPeriodDays = 7
)

// ClampPeriod forces a requested period into [MinStatsPeriodDays, MaxStatsPeriodDays].
func ClampPeriod(days int) int {
	if days < MinStatsPeriodDays {
		return MinStatsPeriodDays
	}
	if days > MaxStatsPeriodDays {
		return MaxStatsPeriodDays
	}
	return days
}

// PeriodDates builds the explicit list of calendar dates in
// [end-days+1, end], oldest first.
func PeriodDates(end time.Time, days int) []string {
	dates := make([]string, 0, days)
	start := end.AddDate(0, 0, -days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates
}

// DayStat is one day's completed/total counts, a point in the chart series.
type DayStat struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// LabelCount is one label's frequency in the period.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats is the derived-metrics bundle for a trailing period.
type Stats struct {
	PeriodDays int    `json:"period_days"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"` // completed/total in [0,1], 0 when total is 0

	Daily []DayStat `json:"daily"`

	ProdStreak  int `json:"prod_streak"`  // trailing consecutive days with >=1 completion
	DiaryStreak int `json:"diary_streak"` // trailing consecutive days with a non-blank entry

	LongestProdStreak  int `json:"longest_prod_streak"`  // within the period
	LongestDiaryStreak int `json:"longest_diary_streak"` // within the period

	AllTimeProdStreak  int `json:"all_time_prod_streak"`  // over complete history
	AllTimeDiaryStreak int `json:"all_time_diary_streak"` // over complete history

	PriorityCounts map[Priority]int `json:"priority_counts"`
	TopLabels      []LabelCount     `json:"top_labels"`
	MoodCounts     map[Mood]int     `json:"mood_counts"`

	DiaryEntryCount int `json:"diary_entry_count"`
	DiaryWordCount  int `json:"diary_word_count"`
	DiaryAvgWords   int `json:"diary_avg_words"`
}

// TrailingStreak counts consecutive trailing days with activity, scanning
// the per-day array (oldest first) from the most recent day backward and
// stopping at the first inactive day.
func TrailingStreak(active []bool) int {
	streak := 0
	for i := len(active) - 1; i >= 0; i-- {
		if !active[i] {
			break
		}
		streak++
	}
	return streak
}

// LongestRun returns the length of the longest consecutive run of active
// days within the array.
func LongestRun(active []bool) int {
	longest, run := 0, 0
	for _, a := range active {
		if a {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// LongestConsecutiveDates finds the longest run of calendar-consecutive
// dates in the given set. A gap of exactly one day continues the run; any
// larger gap resets it to 1. Duplicates are ignored; malformed dates are
// skipped. Returns 0 for an empty set.
func LongestConsecutiveDates(dates map[string]struct{}) int {
	if len(dates) == 0 {
		return 0
	}

	parsed := make([]time.Time, 0, len(dates))
	for s := range dates {
		d, err := ParseDate(s)
		if err != nil {
			continue
		}
		parsed = append(parsed, d)
	}
	if len(parsed) == 0 {
		return 0
	}
	slices.SortFunc(parsed, func(a, b time.Time) int { return a.Compare(b) })

	longest, run := 1, 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Sub(parsed[i-1]) == 24*time.Hour {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}
