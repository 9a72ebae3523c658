package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidDate, http.StatusBadRequest},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), string(tt.code))
	}
}

func TestErrorIs_MatchesByCode(t *testing.T) {
	err := NotFoundf("task %s not found", "tsk-1")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
}

func TestErrorIs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading task: %w", ErrNotFound)
	assert.True(t, Is(err, ErrNotFound))

	wrapped := Wrap(stderrors.New("disk failure"), CodeInternal, "save failed")
	assert.True(t, Is(wrapped, ErrInternal))
	assert.Contains(t, wrapped.Error(), "disk failure")
}

func TestWithDetails(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"text": "is required"})

	assert.Equal(t, CodeValidation, detailed.Code)
	assert.NotNil(t, detailed.Details)
	// The original is untouched.
	assert.Nil(t, base.Details)
}

func TestWithCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Internal("stats failed").WithCause(cause)

	assert.True(t, Is(err, ErrInternal))
	assert.Equal(t, cause, Unwrap(err))
	assert.Equal(t, "stats failed: connection reset", err.Error())
}
