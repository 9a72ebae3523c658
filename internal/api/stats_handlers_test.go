package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumapp/momentum-server/internal/domain"
)

func TestGetStats_RequiresSession(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/stats")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetStats_DefaultPeriod(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	cookie, _ := ts.createTestUser(t, "1")

	resp := ts.api.Get("/api/stats", cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var stats testEnvelope[domain.Stats]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.V)
	assert.True(t, stats.Success)
	assert.Equal(t, 7, stats.Data.PeriodDays)
	assert.Len(t, stats.Data.Daily, 7)
	assert.Zero(t, stats.Data.TotalTasks)
	assert.Zero(t, stats.Data.CompletionRate)
}

func TestGetStats_PeriodClamped(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	cookie, _ := ts.createTestUser(t, "1")

	resp := ts.api.Get("/api/stats?period=500", cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var stats testEnvelope[domain.Stats]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	assert.Equal(t, 90, stats.Data.PeriodDays)
	assert.Len(t, stats.Data.Daily, 90)

	// Explicit zero clamps to one day, unlike an absent period
	resp = ts.api.Get("/api/stats?period=0", cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Data.PeriodDays)
	assert.Len(t, stats.Data.Daily, 1)
}

func TestGetStats_CountsTodaysCompletions(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	cookie, _ := ts.createTestUser(t, "1")
	today := time.Now().UTC().Format(domain.DateLayout)

	resp := ts.api.Post("/api/tasks", cookie, map[string]any{
		"date":     today,
		"text":     "Ship release",
		"priority": "high",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var created testEnvelope[TaskResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = ts.api.Patch("/api/tasks/"+created.Data.ID, cookie, map[string]any{
		"done":     true,
		"for_date": today,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/stats", cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var stats testEnvelope[domain.Stats]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Data.TotalTasks)
	assert.Equal(t, 1, stats.Data.CompletedTasks)
	assert.Equal(t, 1.0, stats.Data.CompletionRate)
	assert.Equal(t, 1, stats.Data.ProdStreak)
	assert.Equal(t, 1, stats.Data.PriorityCounts[domain.PriorityHigh])

	last := stats.Data.Daily[len(stats.Data.Daily)-1]
	assert.Equal(t, today, last.Date)
	assert.Equal(t, 1, last.Completed)
}
