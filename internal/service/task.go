package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
	"github.com/momentumapp/momentum-server/internal/id"
	"github.com/momentumapp/momentum-server/internal/store"
	"github.com/momentumapp/momentum-server/internal/validation"
)

// TaskService orchestrates task operations: creation, per-date listing
// through the occurrence resolver, partial updates, and manual ordering.
type TaskService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewTaskService creates a new task service.
func NewTaskService(store *store.Store, logger *slog.Logger) *TaskService {
	return &TaskService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateTaskInput contains fields for creating a task.
type CreateTaskInput struct {
	Date         string             `json:"date" validate:"required,dateymd"`
	Text         string             `json:"text" validate:"required,min=1,max=500"`
	Description  string             `json:"description,omitempty" validate:"max=2000"`
	Notes        string             `json:"notes,omitempty" validate:"max=5000"`
	Priority     domain.Priority    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Labels       []string           `json:"labels,omitempty" validate:"max=10,dive,min=1,max=40"`
	DueAt        *time.Time         `json:"due_at,omitempty"`
	CarryForward bool               `json:"carry_forward,omitempty"`
	Recurrence   *domain.Recurrence `json:"recurrence,omitempty"`
}

// CreateTask creates a task for the owner, appended to the end of their
// manual order.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if err := validateRecurrence(input.Recurrence); err != nil {
		return nil, err
	}

	taskID, err := id.Generate("tsk")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate task id")
	}

	maxOrder, err := s.store.MaxTaskOrder(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	task := &domain.Task{
		ID:           taskID,
		OwnerID:      ownerID,
		Date:         input.Date,
		Text:         input.Text,
		Description:  input.Description,
		Notes:        input.Notes,
		Priority:     priority,
		Labels:       input.Labels,
		Order:        maxOrder + 1,
		DueAt:        input.DueAt,
		CarryForward: input.CarryForward,
		Recurrence:   input.Recurrence,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Debug("Created task", "task_id", task.ID, "owner_id", ownerID)
	return task, nil
}

// ListTasksForDate returns the owner's tasks active on the given date, with
// Done resolved for that date's occurrence, sorted by manual order.
func (s *TaskService) ListTasksForDate(ctx context.Context, ownerID, date string) ([]*domain.Task, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		occ, err := domain.Resolve(t, date)
		if err != nil {
			// A malformed stored date makes the record unresolvable; skip
			// it rather than failing the whole listing.
			s.logger.Warn("Skipping unresolvable task", "task_id", t.ID, "error", err)
			continue
		}
		if !occ.Active {
			continue
		}

		view := *t
		view.Done = occ.Done
		result = append(result, &view)
	}

	slices.SortStableFunc(result, func(a, b *domain.Task) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return result, nil
}

// UpdateTaskInput contains the optional fields of a partial task update.
// Nil fields are left untouched.
type UpdateTaskInput struct {
	Date         *string            `json:"date,omitempty" validate:"omitempty,dateymd"`
	Text         *string            `json:"text,omitempty" validate:"omitempty,min=1,max=500"`
	Description  *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	Notes        *string            `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Priority     *domain.Priority   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Labels       *[]string          `json:"labels,omitempty" validate:"omitempty,max=10,dive,min=1,max=40"`
	DueAt        *time.Time         `json:"due_at,omitempty"`
	CarryForward *bool              `json:"carry_forward,omitempty"`
	Recurrence   *domain.Recurrence `json:"recurrence,omitempty"`

	// Done with ForDate toggles the per-date completion set; Done alone
	// flips the lifetime flag of a non-recurring task.
	Done    *bool   `json:"done,omitempty"`
	ForDate *string `json:"for_date,omitempty" validate:"omitempty,dateymd"`
}

// UpdateTask applies a partial update to one of the owner's tasks.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, input UpdateTaskInput) (*domain.Task, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if err := validateRecurrence(input.Recurrence); err != nil {
		return nil, err
	}
	if input.ForDate != nil && input.Done == nil {
		return nil, errors.Validation("for_date requires done")
	}

	task, err := s.store.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		task.Date = *input.Date
	}
	if input.Text != nil {
		task.Text = *input.Text
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Labels != nil {
		task.Labels = *input.Labels
	}
	if input.DueAt != nil {
		task.DueAt = input.DueAt
	}
	if input.CarryForward != nil {
		task.CarryForward = *input.CarryForward
	}
	if input.Recurrence != nil {
		task.Recurrence = input.Recurrence
	}

	if input.Done != nil {
		if input.ForDate != nil {
			task.SetCompletedOn(*input.ForDate, *input.Done)
		} else {
			task.Done = *input.Done
		}
	}

	task.UpdatedAt = time.Now()

	if err := s.store.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes one of the owner's tasks.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return s.store.DeleteTask(ctx, ownerID, taskID)
}

// ReorderTasks rewrites the owner's manual task order to match ids.
func (s *TaskService) ReorderTasks(ctx context.Context, ownerID string, ids []string) error {
	if len(ids) == 0 {
		return errors.Validation("ids must not be empty")
	}

	seen := make(map[string]bool, len(ids))
	for _, taskID := range ids {
		if taskID == "" {
			return errors.Validation("ids must not contain empty values")
		}
		if seen[taskID] {
			return errors.Validationf("duplicate task id %s", taskID)
		}
		seen[taskID] = true
	}

	return s.store.ReorderTasks(ctx, ownerID, ids)
}

// validateRecurrence checks a recurrence rule's shape.
func validateRecurrence(r *domain.Recurrence) error {
	if r == nil {
		return nil
	}

	if !domain.ValidRecurrenceType(r.Type) {
		return errors.Validationf("unknown recurrence type %q", r.Type)
	}

	for _, day := range r.DaysOfWeek {
		if day < 0 || day > 6 {
			return errors.Validationf("day of week %d out of range 0-6", day)
		}
	}

	if r.DayOfMonth != nil && (*r.DayOfMonth < 1 || *r.DayOfMonth > 31) {
		return errors.Validationf("day of month %d out of range 1-31", *r.DayOfMonth)
	}

	if r.Type == domain.RecurrenceWeekly && len(r.DaysOfWeek) == 0 {
		return errors.Validation("weekly recurrence requires days_of_week")
	}
	if r.Type == domain.RecurrenceMonthly && r.DayOfMonth == nil {
		return errors.Validation("monthly recurrence requires day_of_month")
	}

	if r.EndDate != "" {
		if _, err := domain.ParseDate(r.EndDate); err != nil {
			return err
		}
	}

	return nil
}
