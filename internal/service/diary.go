package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
	"github.com/momentumapp/momentum-server/internal/store"
	"github.com/momentumapp/momentum-server/internal/validation"
)

// DiaryService orchestrates diary entry reads and upserts.
type DiaryService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewDiaryService creates a new diary service.
func NewDiaryService(store *store.Store, logger *slog.Logger) *DiaryService {
	return &DiaryService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// GetEntry returns the owner's diary entry for the date. A date without an
// entry returns a blank placeholder, never a not-found error: the client
// renders every date as an editable page.
func (s *DiaryService) GetEntry(ctx context.Context, ownerID, date string) (*domain.DiaryEntry, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	entry, err := s.store.GetEntry(ctx, ownerID, date)
	if errors.Is(err, store.ErrEntryNotFound) {
		return &domain.DiaryEntry{OwnerID: ownerID, Date: date}, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PutEntryInput contains fields for writing a diary entry.
type PutEntryInput struct {
	Date string      `json:"date" validate:"required,dateymd"`
	Text string      `json:"text,omitempty" validate:"max=20000"`
	Mood domain.Mood `json:"mood,omitempty"`
}

// PutEntry creates or replaces the owner's entry for the input date.
// Writing a blank entry (no text, no mood) deletes the stored record.
func (s *DiaryService) PutEntry(ctx context.Context, ownerID string, input PutEntryInput) (*domain.DiaryEntry, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if !domain.ValidMood(input.Mood) {
		return nil, errors.Validationf("unknown mood %q", input.Mood)
	}

	now := time.Now()
	entry := &domain.DiaryEntry{
		OwnerID:   ownerID,
		Date:      input.Date,
		Text:      input.Text,
		Mood:      input.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if entry.IsBlank() && entry.Mood == "" {
		if err := s.store.DeleteEntry(ctx, ownerID, input.Date); err != nil {
			return nil, err
		}
		return entry, nil
	}

	// Preserve the original creation time on overwrite
	if existing, err := s.store.GetEntry(ctx, ownerID, input.Date); err == nil {
		entry.CreatedAt = existing.CreatedAt
	}

	if err := s.store.PutEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Debug("Saved diary entry", "owner_id", ownerID, "date", input.Date)
	return entry, nil
}
