package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/errors"
)

func TestDiaryPutThenGet(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewDiaryService(testStore, testLogger())
	ctx := context.Background()

	_, err := svc.PutEntry(ctx, "usr-1", PutEntryInput{
		Date: "2024-06-01",
		Text: "Good day",
		Mood: domain.MoodHappy,
	})
	require.NoError(t, err)

	entry, err := svc.GetEntry(ctx, "usr-1", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", entry.Date)
	assert.Equal(t, "Good day", entry.Text)
	assert.Equal(t, domain.MoodHappy, entry.Mood)
}

func TestDiaryGet_MissingDateIsBlankNot404(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewDiaryService(testStore, testLogger())

	entry, err := svc.GetEntry(context.Background(), "usr-1", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", entry.Date)
	assert.Empty(t, entry.Text)
	assert.Empty(t, entry.Mood)
}

func TestDiaryGet_BadDate(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewDiaryService(testStore, testLogger())

	_, err := svc.GetEntry(context.Background(), "usr-1", "someday")
	assert.True(t, errors.Is(err, errors.ErrInvalidDate))
}

func TestDiaryPut_RejectsUnknownMood(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewDiaryService(testStore, testLogger())

	_, err := svc.PutEntry(context.Background(), "usr-1", PutEntryInput{
		Date: "2024-06-01",
		Text: "Feeling weird",
		Mood: "bewildered",
	})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestDiaryPut_UpsertKeepsCreationTime(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewDiaryService(testStore, testLogger())
	ctx := context.Background()

	first, err := svc.PutEntry(ctx, "usr-1", PutEntryInput{Date: "2024-06-01", Text: "Draft"})
	require.NoError(t, err)

	second, err := svc.PutEntry(ctx, "usr-1", PutEntryInput{Date: "2024-06-01", Text: "Final"})
	require.NoError(t, err)

	// The stored time lost its monotonic reading, compare instants
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, "Final", second.Text)
}

func TestDiaryPut_BlankDeletesEntry(t *testing.T) {
	testStore, cleanup := setupTestServices(t)
	defer cleanup()

	svc := NewDiaryService(testStore, testLogger())
	ctx := context.Background()

	_, err := svc.PutEntry(ctx, "usr-1", PutEntryInput{Date: "2024-06-01", Text: "Something"})
	require.NoError(t, err)

	_, err = svc.PutEntry(ctx, "usr-1", PutEntryInput{Date: "2024-06-01", Text: "   "})
	require.NoError(t, err)

	entry, err := svc.GetEntry(ctx, "usr-1", "2024-06-01")
	require.NoError(t, err)
	assert.True(t, entry.IsBlank())
}
