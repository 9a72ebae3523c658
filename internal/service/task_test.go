package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
	"github.com/momentumapp/momentum-server/internal/store"
)

func strPtr(s string) *string                  { return &s }
func boolPtr(b bool) *bool                     { return &b }
func intPtr(i int) *int                        { return &i }
func priorityPtr(p domain.Priority) *domain.Priority { return &p }

func TestCreateTask_Defaults(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{
		Date: "2024-06-01",
		Text: "Write report",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, 0, task.Order)
	assert.False(t, task.Done)

	// Orders append
	second, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{Date: "2024-06-01", Text: "Second"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)
}

func TestCreateTask_Validation(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateTaskInput
	}{
		{"missing text", CreateTaskInput{Date: "2024-06-01"}},
		{"missing date", CreateTaskInput{Text: "No date"}},
		{"malformed date", CreateTaskInput{Date: "June 1st", Text: "Bad date"}},
		{"impossible date", CreateTaskInput{Date: "2024-02-30", Text: "Bad date"}},
		{"bad priority", CreateTaskInput{Date: "2024-06-01", Text: "ok", Priority: "urgent"}},
		{"weekly without days", CreateTaskInput{
			Date: "2024-06-01", Text: "ok",
			Recurrence: &domain.Recurrence{Type: domain.RecurrenceWeekly},
		}},
		{"weekday out of range", CreateTaskInput{
			Date: "2024-06-01", Text: "ok",
			Recurrence: &domain.Recurrence{Type: domain.RecurrenceWeekly, DaysOfWeek: []int{7}},
		}},
		{"monthly without day", CreateTaskInput{
			Date: "2024-06-01", Text: "ok",
			Recurrence: &domain.Recurrence{Type: domain.RecurrenceMonthly},
		}},
		{"bad end date", CreateTaskInput{
			Date: "2024-06-01", Text: "ok",
			Recurrence: &domain.Recurrence{Type: domain.RecurrenceDaily, EndDate: "soon"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, "usr-1", tc.input)
			assert.Error(t, err)
		})
	}
}

func TestListTasksForDate_ResolvesOccurrences(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	// Daily task, active from its base date onward
	daily, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{
		Date: "2024-06-01", Text: "Stretch",
		Recurrence: &domain.Recurrence{Type: domain.RecurrenceDaily},
	})
	require.NoError(t, err)

	// One-time task on a different date
	_, err = svc.CreateTask(ctx, "usr-1", CreateTaskInput{
		Date: "2024-06-03", Text: "Dentist",
		Recurrence: &domain.Recurrence{Type: domain.RecurrenceOneTime},
	})
	require.NoError(t, err)

	tasks, err := svc.ListTasksForDate(ctx, "usr-1", "2024-06-02")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Stretch", tasks[0].Text)
	assert.False(t, tasks[0].Done)

	// Complete the daily task for that date only
	_, err = svc.UpdateTask(ctx, "usr-1", daily.ID, UpdateTaskInput{
		Done: boolPtr(true), ForDate: strPtr("2024-06-02"),
	})
	require.NoError(t, err)

	tasks, err = svc.ListTasksForDate(ctx, "usr-1", "2024-06-02")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Done)

	// The next day starts fresh
	tasks, err = svc.ListTasksForDate(ctx, "usr-1", "2024-06-03")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.False(t, task.Done, task.Text)
	}
}

func TestListTasksForDate_BadDate(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())

	_, err := svc.ListTasksForDate(context.Background(), "usr-1", "tomorrow")
	assert.True(t, errors.Is(err, errors.ErrInvalidDate))
}

func TestUpdateTask_RoundTrip(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{
		Date:     "2024-06-01",
		Text:     "Write report",
		Priority: domain.PriorityHigh,
		Labels:   []string{"work"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, "usr-1", task.ID, UpdateTaskInput{
		Priority: priorityPtr(domain.PriorityLow),
	})
	require.NoError(t, err)

	// Only the patched field changed
	assert.Equal(t, domain.PriorityLow, updated.Priority)
	assert.Equal(t, "Write report", updated.Text)
	assert.Equal(t, []string{"work"}, updated.Labels)
}

func TestUpdateTask_ToggleIdempotent(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{
		Date: "2024-06-01", Text: "Meditate",
		Recurrence: &domain.Recurrence{Type: domain.RecurrenceDaily},
	})
	require.NoError(t, err)

	on, err := svc.UpdateTask(ctx, "usr-1", task.ID, UpdateTaskInput{
		Done: boolPtr(true), ForDate: strPtr("2024-06-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-02"}, on.CompletedOn)

	off, err := svc.UpdateTask(ctx, "usr-1", task.ID, UpdateTaskInput{
		Done: boolPtr(false), ForDate: strPtr("2024-06-02"),
	})
	require.NoError(t, err)
	assert.Empty(t, off.CompletedOn)
}

func TestUpdateTask_ForDateRequiresDone(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{Date: "2024-06-01", Text: "X"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, "usr-1", task.ID, UpdateTaskInput{ForDate: strPtr("2024-06-02")})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestUpdateTask_NotOwned(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{Date: "2024-06-01", Text: "Mine"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, "usr-2", task.ID, UpdateTaskInput{Text: strPtr("Stolen")})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestReorderTasks(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	a, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{Date: "2024-06-01", Text: "A"})
	require.NoError(t, err)
	b, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{Date: "2024-06-01", Text: "B"})
	require.NoError(t, err)

	require.NoError(t, svc.ReorderTasks(ctx, "usr-1", []string{b.ID, a.ID}))

	tasks, err := svc.ListTasksForDate(ctx, "usr-1", "2024-06-01")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "B", tasks[0].Text)
	assert.Equal(t, "A", tasks[1].Text)
}

func TestReorderTasks_Rejections(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewTaskService(testStore, testLogger())
	ctx := context.Background()

	a, err := svc.CreateTask(ctx, "usr-1", CreateTaskInput{Date: "2024-06-01", Text: "A"})
	require.NoError(t, err)

	assert.Error(t, svc.ReorderTasks(ctx, "usr-1", nil))
	assert.Error(t, svc.ReorderTasks(ctx, "usr-1", []string{a.ID, a.ID}))
	assert.ErrorIs(t, svc.ReorderTasks(ctx, "usr-1", []string{"tsk-ghost"}), store.ErrTaskNotFound)

	// Foreign ids look like unknown ids
	assert.ErrorIs(t, svc.ReorderTasks(ctx, "usr-2", []string{a.ID}), store.ErrTaskNotFound)
}
