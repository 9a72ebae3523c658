package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/service"
)

func (s *Server) registerDiaryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDiaryEntry",
		Method:      http.MethodGet,
		Path:        "/api/diary",
		Summary:     "Get diary entry",
		Description: "Returns the entry for a date, or a blank placeholder when none exists",
		Tags:        []string{"Diary"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetDiaryEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "putDiaryEntry",
		Method:      http.MethodPut,
		Path:        "/api/diary",
		Summary:     "Write diary entry",
		Description: "Creates or replaces the entry for the given date",
		Tags:        []string{"Diary"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handlePutDiaryEntry)
}

// === DTOs ===

// DiaryEntryResponse contains diary entry data in API responses.
type DiaryEntryResponse struct {
	Date      string      `json:"date" doc:"Entry date (YYYY-MM-DD)"`
	Text      string      `json:"text" doc:"Entry text"`
	Mood      domain.Mood `json:"mood,omitempty" doc:"Optional mood tag"`
	CreatedAt time.Time   `json:"created_at,omitzero" doc:"Creation time"`
	UpdatedAt time.Time   `json:"updated_at,omitzero" doc:"Last update time"`
}

func toDiaryEntryResponse(e *domain.DiaryEntry) DiaryEntryResponse {
	return DiaryEntryResponse{
		Date:      e.Date,
		Text:      e.Text,
		Mood:      e.Mood,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// GetDiaryEntryInput contains parameters for fetching an entry.
type GetDiaryEntryInput struct {
	Date string `query:"date" required:"true" doc:"Date to fetch (YYYY-MM-DD)"`
}

// DiaryEntryOutput wraps the diary entry response for Huma.
type DiaryEntryOutput struct {
	Body DiaryEntryResponse
}

// PutDiaryEntryInput wraps the upsert request for Huma.
type PutDiaryEntryInput struct {
	Body service.PutEntryInput
}

// === Handlers ===

func (s *Server) handleGetDiaryEntry(ctx context.Context, input *GetDiaryEntryInput) (*DiaryEntryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.Diary.GetEntry(ctx, userID, input.Date)
	if err != nil {
		return nil, err
	}

	return &DiaryEntryOutput{Body: toDiaryEntryResponse(entry)}, nil
}

func (s *Server) handlePutDiaryEntry(ctx context.Context, input *PutDiaryEntryInput) (*DiaryEntryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.Diary.PutEntry(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &DiaryEntryOutput{Body: toDiaryEntryResponse(entry)}, nil
}
