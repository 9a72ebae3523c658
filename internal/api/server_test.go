package api

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/momentumapp/momentum-server/internal/config"
	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/service"
	"github.com/momentumapp/momentum-server/internal/store"
)

const testCookieName = "momentum_session"

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api     humatest.TestAPI
	store   *store.Store
	cleanup func()
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "momentum-api-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	st, err := store.New(dbPath, nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Client: config.ClientConfig{URL: "http://localhost:5173"},
		Session: config.SessionConfig{
			CookieName: testCookieName,
			Duration:   time.Hour,
		},
	}

	services := &Services{
		Auth:    service.NewAuthService(st, nil, cfg.Session, logger),
		Task:    service.NewTaskService(st, logger),
		Diary:   service.NewDiaryService(st, logger),
		Stats:   service.NewStatsService(st, logger),
		Account: service.NewAccountService(st, logger),
	}

	s := NewServer(cfg, st, services, logger)

	cleanup := func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		store:   st,
		cleanup: cleanup,
	}
}

// createTestUser creates an account with an open session and returns the
// Cookie header for authenticated requests, plus the user ID.
func (ts *testServer) createTestUser(t *testing.T, suffix string) (cookie string, userID string) {
	t.Helper()
	ctx := context.Background()

	userID = "usr-" + suffix
	user := domain.NewUser(userID, "google-"+suffix, suffix+"@example.com", "Test "+suffix, "")
	require.NoError(t, ts.store.CreateUser(ctx, user))

	session := domain.NewSession(userID, time.Hour)
	require.NoError(t, ts.store.CreateSession(ctx, session))

	return "Cookie: " + testCookieName + "=" + session.ID, userID
}
