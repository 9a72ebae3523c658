package store

import (
	"context"
	"fmt"
	"time"

	"github.com/momentumapp/momentum-server/internal/domain"
)

// UserExport is the portable snapshot of everything one account owns.
type UserExport struct {
	ExportedAt time.Time            `json:"exported_at"`
	User       *domain.User         `json:"user"`
	Tasks      []*domain.Task       `json:"tasks"`
	Diary      []*domain.DiaryEntry `json:"diary"`
}

// ExportUserData gathers a full snapshot of one user's data.
func (s *Store) ExportUserData(ctx context.Context, userID string) (*UserExport, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.ListTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}

	entries, err := s.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export diary: %w", err)
	}

	return &UserExport{
		ExportedAt: time.Now().UTC(),
		User:       user,
		Tasks:      tasks,
		Diary:      entries,
	}, nil
}

// DeleteUserData removes the account and everything it owns: the user
// record, all tasks, all diary entries, and all sessions.
func (s *Store) DeleteUserData(ctx context.Context, userID string) error {
	if _, err := s.deletePrefix(ownerTaskPrefix(userID)); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}

	if _, err := s.deletePrefix(ownerDiaryPrefix(userID)); err != nil {
		return fmt.Errorf("delete diary: %w", err)
	}

	if _, err := s.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}

	if err := s.Users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Deleted all data for user", "user_id", userID)
	}

	return nil
}
