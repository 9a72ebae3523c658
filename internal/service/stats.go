package service

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
	"github.com/momentumapp/momentum-server/internal/store"
)

// StatsService computes the derived-metrics bundle for the dashboard.
type StatsService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store *store.Store, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// GetStats computes the stats bundle for the trailing period ending today.
// The period is clamped to [1, 90] days; defaulting an absent period is the
// caller's job. Unexpected failures surface as a generic error with details
// logged only.
func (s *StatsService) GetStats(ctx context.Context, ownerID string, periodDays int) (*domain.Stats, error) {
	periodDays = domain.ClampPeriod(periodDays)

	stats, err := s.compute(ctx, ownerID, periodDays, time.Now())
	if err != nil {
		s.logger.Error("Stats aggregation failed", "owner_id", ownerID, "error", err)
		return nil, errors.Internal("stats failed")
	}
	return stats, nil
}

func (s *StatsService) compute(ctx context.Context, ownerID string, periodDays int, now time.Time) (*domain.Stats, error) {
	dates := domain.PeriodDates(now, periodDays)

	tasks, err := s.store.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.store.ListEntries(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entryByDate := make(map[string]*domain.DiaryEntry, len(entries))
	for _, e := range entries {
		entryByDate[e.Date] = e
	}

	stats := &domain.Stats{
		PeriodDays:     periodDays,
		StartDate:      dates[0],
		EndDate:        dates[len(dates)-1],
		Daily:          make([]domain.DayStat, 0, len(dates)),
		PriorityCounts: make(map[domain.Priority]int),
		MoodCounts:     make(map[domain.Mood]int),
	}

	labelCounts := make(map[string]int)
	prodDays := make([]bool, len(dates))
	diaryDays := make([]bool, len(dates))

	for i, date := range dates {
		day := domain.DayStat{Date: date}

		for _, t := range tasks {
			occ, err := domain.Resolve(t, date)
			if err != nil {
				return nil, err
			}
			if !occ.Active {
				continue
			}

			day.Total++
			stats.PriorityCounts[t.Priority]++
			for _, label := range t.Labels {
				labelCounts[label]++
			}
			if occ.Done {
				day.Completed++
			}
		}

		stats.TotalTasks += day.Total
		stats.CompletedTasks += day.Completed
		prodDays[i] = day.Completed > 0
		stats.Daily = append(stats.Daily, day)

		if entry, ok := entryByDate[date]; ok && !entry.IsBlank() {
			diaryDays[i] = true
			stats.DiaryEntryCount++
			stats.DiaryWordCount += entry.WordCount()
			if entry.Mood != "" {
				stats.MoodCounts[entry.Mood]++
			}
		}
	}

	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks)
	}
	if stats.DiaryEntryCount > 0 {
		stats.DiaryAvgWords = int(math.Round(float64(stats.DiaryWordCount) / float64(stats.DiaryEntryCount)))
	}

	stats.ProdStreak = domain.TrailingStreak(prodDays)
	stats.DiaryStreak = domain.TrailingStreak(diaryDays)
	stats.LongestProdStreak = domain.LongestRun(prodDays)
	stats.LongestDiaryStreak = domain.LongestRun(diaryDays)

	stats.AllTimeProdStreak = domain.LongestConsecutiveDates(completionDates(tasks))
	stats.AllTimeDiaryStreak = domain.LongestConsecutiveDates(diaryDates(entries))

	stats.TopLabels = topLabels(labelCounts, 5)

	return stats, nil
}

// completionDates collects every distinct date with at least one completion,
// from per-date completion sets and legacy lifetime-done base dates.
func completionDates(tasks []*domain.Task) map[string]struct{} {
	dates := make(map[string]struct{})
	for _, t := range tasks {
		for _, d := range t.CompletedOn {
			dates[d] = struct{}{}
		}
		if t.Done && len(t.CompletedOn) == 0 && t.Date != "" {
			dates[t.Date] = struct{}{}
		}
	}
	return dates
}

// diaryDates collects every distinct date with a non-blank diary entry.
func diaryDates(entries []*domain.DiaryEntry) map[string]struct{} {
	dates := make(map[string]struct{})
	for _, e := range entries {
		if !e.IsBlank() {
			dates[e.Date] = struct{}{}
		}
	}
	return dates
}

// topLabels returns the n most frequent labels, ties broken alphabetically.
func topLabels(counts map[string]int, n int) []domain.LabelCount {
	labels := make([]domain.LabelCount, 0, len(counts))
	for label, count := range counts {
		labels = append(labels, domain.LabelCount{Label: label, Count: count})
	}

	slices.SortFunc(labels, func(a, b domain.LabelCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Label, b.Label)
	})

	if len(labels) > n {
		labels = labels[:n]
	}
	return labels
}
