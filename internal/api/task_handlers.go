package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/service"
)

func (s *Server) registerTaskRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTasks",
		Method:      http.MethodGet,
		Path:        "/api/tasks",
		Summary:     "List tasks for a date",
		Description: "Returns the tasks active on the given date, with completion resolved per occurrence",
		Tags:        []string{"Tasks"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleListTasks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTask",
		Method:      http.MethodPost,
		Path:        "/api/tasks",
		Summary:     "Create task",
		Tags:        []string{"Tasks"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleCreateTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTask",
		Method:      http.MethodPatch,
		Path:        "/api/tasks/{id}",
		Summary:     "Update task",
		Description: "Partial update; done with for_date toggles per-date completion instead of the lifetime flag",
		Tags:        []string{"Tasks"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTask",
		Method:      http.MethodDelete,
		Path:        "/api/tasks/{id}",
		Summary:     "Delete task",
		Tags:        []string{"Tasks"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteTask)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderTasks",
		Method:      http.MethodPut,
		Path:        "/api/tasks/reorder",
		Summary:     "Reorder tasks",
		Description: "Reassigns manual order by array position",
		Tags:        []string{"Tasks"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleReorderTasks)
}

// === DTOs ===

// TaskResponse contains task data in API responses.
type TaskResponse struct {
	ID           string             `json:"id" doc:"Task ID"`
	Date         string             `json:"date" doc:"Base date (YYYY-MM-DD)"`
	Text         string             `json:"text" doc:"Task text"`
	Description  string             `json:"description,omitempty" doc:"Longer description"`
	Notes        string             `json:"notes,omitempty" doc:"Free-form notes"`
	Done         bool               `json:"done" doc:"Completion for the requested occurrence"`
	CompletedOn  []string           `json:"completed_on,omitempty" doc:"Dates completed (recurring tasks)"`
	Priority     domain.Priority    `json:"priority" doc:"low, medium, or high"`
	Labels       []string           `json:"labels,omitempty" doc:"Category labels"`
	Order        int                `json:"order" doc:"Manual sort position"`
	DueAt        *time.Time         `json:"due_at,omitempty" doc:"Due timestamp"`
	CarryForward bool               `json:"carry_forward,omitempty" doc:"Reappears until completed"`
	Recurrence   *domain.Recurrence `json:"recurrence,omitempty" doc:"Repetition rule"`
	CreatedAt    time.Time          `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time          `json:"updated_at" doc:"Last update time"`
}

func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Date:         t.Date,
		Text:         t.Text,
		Description:  t.Description,
		Notes:        t.Notes,
		Done:         t.Done,
		CompletedOn:  t.CompletedOn,
		Priority:     t.Priority,
		Labels:       t.Labels,
		Order:        t.Order,
		DueAt:        t.DueAt,
		CarryForward: t.CarryForward,
		Recurrence:   t.Recurrence,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ListTasksInput contains parameters for listing tasks.
type ListTasksInput struct {
	Date string `query:"date" required:"true" doc:"Date to list occurrences for (YYYY-MM-DD)"`
}

// ListTasksResponse contains a date's task occurrences.
type ListTasksResponse struct {
	Date  string         `json:"date" doc:"Requested date"`
	Tasks []TaskResponse `json:"tasks" doc:"Active tasks, in manual order"`
}

// ListTasksOutput wraps the list tasks response for Huma.
type ListTasksOutput struct {
	Body ListTasksResponse
}

// CreateTaskInput wraps the create task request for Huma.
type CreateTaskInput struct {
	Body service.CreateTaskInput
}

// TaskOutput wraps a single task response for Huma.
type TaskOutput struct {
	Body TaskResponse
}

// UpdateTaskInput wraps the update task request for Huma.
type UpdateTaskInput struct {
	ID   string `path:"id" doc:"Task ID"`
	Body service.UpdateTaskInput
}

// DeleteTaskInput contains parameters for deleting a task.
type DeleteTaskInput struct {
	ID string `path:"id" doc:"Task ID"`
}

// ReorderTasksRequest is the request body for reordering tasks.
type ReorderTasksRequest struct {
	IDs []string `json:"ids" minItems:"1" doc:"Task IDs in desired order"`
}

// ReorderTasksInput wraps the reorder request for Huma.
type ReorderTasksInput struct {
	Body ReorderTasksRequest
}

// === Handlers ===

func (s *Server) handleListTasks(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.services.Task.ListTasksForDate(ctx, userID, input.Date)
	if err != nil {
		return nil, err
	}

	resp := ListTasksResponse{
		Date:  input.Date,
		Tasks: make([]TaskResponse, 0, len(tasks)),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}

	return &ListTasksOutput{Body: resp}, nil
}

func (s *Server) handleCreateTask(ctx context.Context, input *CreateTaskInput) (*TaskOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.services.Task.CreateTask(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: toTaskResponse(task)}, nil
}

func (s *Server) handleUpdateTask(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.services.Task.UpdateTask(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &TaskOutput{Body: toTaskResponse(task)}, nil
}

func (s *Server) handleDeleteTask(ctx context.Context, input *DeleteTaskInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Task.DeleteTask(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Task deleted"}}, nil
}

func (s *Server) handleReorderTasks(ctx context.Context, input *ReorderTasksInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Task.ReorderTasks(ctx, userID, input.Body.IDs); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Order updated"}}, nil
}
