package api

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumapp/momentum-server/internal/store"
)

func TestUpdateTheme(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	cookie, userID := ts.createTestUser(t, "1")

	resp := ts.api.Patch("/api/me/theme", cookie, map[string]any{
		"theme": "dark",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var user testEnvelope[UserResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	assert.Equal(t, "dark", string(user.Data.Theme))

	// Persisted
	stored, err := ts.store.GetUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(stored.Theme))
}

func TestUpdateTheme_RejectsUnknownValue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	cookie, _ := ts.createTestUser(t, "1")

	resp := ts.api.Patch("/api/me/theme", cookie, map[string]any{
		"theme": "sepia",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())
}

func TestExportData(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	cookie, userID := ts.createTestUser(t, "1")

	resp := ts.api.Post("/api/tasks", cookie, map[string]any{
		"date": "2024-06-01",
		"text": "In the export",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/me/export", cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, `attachment; filename="momentum-export.json"`,
		resp.Header().Get("Content-Disposition"))

	// The download is the bare bundle, not wrapped in the envelope
	var raw map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "v")
	assert.NotContains(t, raw, "success")

	var export store.UserExport
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &export))
	require.NotNil(t, export.User)
	assert.Equal(t, userID, export.User.ID)
	require.Len(t, export.Tasks, 1)
	assert.Equal(t, "In the export", export.Tasks[0].Text)
	assert.False(t, export.ExportedAt.IsZero())
}

func TestDeleteAccount(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	cookie, userID := ts.createTestUser(t, "1")

	resp := ts.api.Post("/api/tasks", cookie, map[string]any{
		"date": "2024-06-01",
		"text": "Doomed",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Delete("/api/me", cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Session cookie is expired in the response.
	setCookie := resp.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, testCookieName+"=")
	assert.Contains(t, setCookie, "Max-Age=0")

	// Everything the account owned is gone.
	ctx := context.Background()
	_, err := ts.store.GetUser(ctx, userID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	tasks, err := ts.store.ListTasks(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// The old session no longer authenticates.
	resp = ts.api.Get("/api/tasks?date=2024-06-01", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProfile_RequiresSession(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/me/theme", map[string]any{"theme": "dark"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/me/export")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Delete("/api/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
