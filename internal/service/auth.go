package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/momentumapp/momentum-server/internal/auth"
	"github.com/momentumapp/momentum-server/internal/config"
	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
	"github.com/momentumapp/momentum-server/internal/id"
	"github.com/momentumapp/momentum-server/internal/store"
)

// AuthService drives the Google sign-in flow and session lifecycle.
type AuthService struct {
	store           *store.Store
	google          *auth.GoogleClient
	state           *auth.StateService
	logger          *slog.Logger
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service. The Google client may be nil
// when OAuth credentials are not configured; Enabled reports that state.
func NewAuthService(store *store.Store, google *auth.GoogleClient, cfg config.SessionConfig, logger *slog.Logger) *AuthService {
	duration := cfg.Duration
	if duration <= 0 {
		duration = domain.DefaultSessionDuration
	}

	return &AuthService{
		store:           store,
		google:          google,
		state:           auth.NewStateService(),
		logger:          logger,
		sessionDuration: duration,
	}
}

// Enabled reports whether Google sign-in is configured.
func (s *AuthService) Enabled() bool {
	return s.google != nil
}

// BeginLogin returns the Google consent URL for a new login attempt.
func (s *AuthService) BeginLogin(redirectTo string) (string, error) {
	if !s.Enabled() {
		return "", errors.Internal("sign-in is not configured")
	}

	state, err := s.state.Issue(redirectTo)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "issue state token")
	}

	return s.google.AuthURL(state), nil
}

// CompleteLogin handles the OAuth callback: verifies state, exchanges the
// code, upserts the account, and opens a session. Returns the session and
// the post-login redirect path carried through the state token.
func (s *AuthService) CompleteLogin(ctx context.Context, state, code string) (*domain.Session, string, error) {
	if !s.Enabled() {
		return nil, "", errors.Internal("sign-in is not configured")
	}

	redirectTo, err := s.state.Verify(state)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CodeUnauthorized, "invalid login state")
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CodeUnauthorized, "identity exchange failed")
	}

	user, err := s.upsertUser(ctx, profile)
	if err != nil {
		return nil, "", err
	}

	session := domain.NewSession(user.ID, s.sessionDuration)
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, "", errors.Wrap(err, errors.CodeInternal, "create session")
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return session, redirectTo, nil
}

// upsertUser finds the account for a Google profile, creating it on first
// login and refreshing stale profile fields on every return visit.
func (s *AuthService) upsertUser(ctx context.Context, profile *auth.Profile) (*domain.User, error) {
	user, err := s.store.GetUserByGoogleID(ctx, profile.Sub)
	if err == nil {
		if user.RefreshProfile(profile.Email, profile.Name, profile.Picture) {
			if err := s.store.UpdateUser(ctx, user); err != nil {
				return nil, errors.Wrap(err, errors.CodeInternal, "refresh profile")
			}
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, errors.Wrap(err, errors.CodeInternal, "look up account")
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate user id")
	}

	user = domain.NewUser(userID, profile.Sub, profile.Email, profile.Name, profile.Picture)
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create account")
	}

	s.logger.Info("Created account", "user_id", user.ID)
	return user, nil
}

// VerifySession resolves a session cookie value to the logged-in user.
func (s *AuthService) VerifySession(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, errors.Unauthorized("not logged in")
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, errors.Unauthorized("not logged in")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		// Account deleted with a session left behind; treat as logged out.
		_ = s.store.DeleteSession(ctx, sessionID)
		return nil, errors.Unauthorized("not logged in")
	}

	return user, nil
}

// Logout destroys the session. Safe to call with an unknown session ID.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.DeleteSession(ctx, sessionID)
}
