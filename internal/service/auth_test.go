package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumapp/momentum-server/internal/config"
	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
)

func newTestAuthService(t *testing.T) (*AuthService, func()) {
	t.Helper()

	testStore, cleanup := setupTestServices(t)
	svc := NewAuthService(testStore, nil, config.SessionConfig{Duration: time.Hour}, testLogger())
	return svc, cleanup
}

func TestAuth_DisabledWithoutCredentials(t *testing.T) {
	svc, cleanup := newTestAuthService(t)
	defer cleanup()

	assert.False(t, svc.Enabled())

	_, err := svc.BeginLogin("/")
	assert.Error(t, err)

	_, _, err = svc.CompleteLogin(context.Background(), "state", "code")
	assert.Error(t, err)
}

func TestVerifySession(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewAuthService(testStore, nil, config.SessionConfig{Duration: time.Hour}, testLogger())
	ctx := context.Background()

	user := domain.NewUser("usr-1", "google-1", "ada@example.com", "Ada", "")
	require.NoError(t, testStore.CreateUser(ctx, user))

	session := domain.NewSession("usr-1", time.Hour)
	require.NoError(t, testStore.CreateSession(ctx, session))

	got, err := svc.VerifySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)
}

func TestVerifySession_Rejections(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewAuthService(testStore, nil, config.SessionConfig{Duration: time.Hour}, testLogger())
	ctx := context.Background()

	// Empty and unknown cookies
	_, err := svc.VerifySession(ctx, "")
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	_, err = svc.VerifySession(ctx, "no-such-session")
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	// Expired session
	expired := domain.NewSession("usr-1", time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, testStore.CreateSession(ctx, expired))

	_, err = svc.VerifySession(ctx, expired.ID)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	// Session pointing at a deleted account
	orphan := domain.NewSession("usr-gone", time.Hour)
	require.NoError(t, testStore.CreateSession(ctx, orphan))

	_, err = svc.VerifySession(ctx, orphan.ID)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestLogout(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewAuthService(testStore, nil, config.SessionConfig{Duration: time.Hour}, testLogger())
	ctx := context.Background()

	user := domain.NewUser("usr-1", "google-1", "ada@example.com", "Ada", "")
	require.NoError(t, testStore.CreateUser(ctx, user))

	session := domain.NewSession("usr-1", time.Hour)
	require.NoError(t, testStore.CreateSession(ctx, session))

	require.NoError(t, svc.Logout(ctx, session.ID))

	_, err := svc.VerifySession(ctx, session.ID)
	assert.Error(t, err)

	// Unknown and empty session IDs are fine
	assert.NoError(t, svc.Logout(ctx, session.ID))
	assert.NoError(t, svc.Logout(ctx, ""))
}
