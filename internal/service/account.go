package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
	"github.com/momentumapp/momentum-server/internal/store"
)

// AccountService handles profile preferences, data export, and account
// erasure.
type AccountService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(store *store.Store, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger,
	}
}

// UpdateTheme sets the user's color scheme preference.
func (s *AccountService) UpdateTheme(ctx context.Context, userID string, theme domain.Theme) (*domain.User, error) {
	if !domain.ValidTheme(theme) {
		return nil, errors.Validationf("unknown theme %q", theme)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Theme = theme
	user.UpdatedAt = time.Now()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Export gathers the user's full data bundle for download.
func (s *AccountService) Export(ctx context.Context, userID string) (*store.UserExport, error) {
	return s.store.ExportUserData(ctx, userID)
}

// DeleteAccount erases the account and everything it owns. The caller's
// session dies with it.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.store.DeleteUserData(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("Account deleted", "user_id", userID)
	return nil
}
