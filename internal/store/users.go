package store

import (
	"context"
	"errors"

	"github.com/momentumapp/momentum-server/internal/domain"
)

// CreateUser persists a new user account.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	return s.Users.Create(ctx, user.ID, user)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetUserByGoogleID retrieves a user by their Google subject ID.
func (s *Store) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "google", googleID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateUser persists changes to an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	err := s.Users.Update(ctx, user.ID, user)
	if errors.Is(err, ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
