package api

import (
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/momentumapp/momentum-server/internal/errors"
)

func TestEnvelopeTransformer_Success(t *testing.T) {
	out, err := EnvelopeTransformer(nil, "200", map[string]string{"id": "tsk-1"})
	require.NoError(t, err)

	env, ok := out.(APIEnvelope)
	require.True(t, ok)
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Error)
}

func TestEnvelopeTransformer_NonSuccessStatus(t *testing.T) {
	out, err := EnvelopeTransformer(nil, "404", map[string]string{"hint": "gone"})
	require.NoError(t, err)

	env, ok := out.(APIEnvelope)
	require.True(t, ok)
	assert.False(t, env.Success)
}

func TestEnvelopeTransformer_PlainError(t *testing.T) {
	out, err := EnvelopeTransformer(nil, "500", errors.New("something broke"))
	require.NoError(t, err)

	env, ok := out.(APIEnvelope)
	require.True(t, ok)
	assert.False(t, env.Success)
	assert.Equal(t, "something broke", env.Error)
	assert.Nil(t, env.Data)
}

func TestEnvelopeTransformer_CodedError(t *testing.T) {
	apiErr := &APIError{
		status:  404,
		Code:    "NOT_FOUND",
		Message: "task not found",
		Details: map[string]string{"id": "tsk-1"},
	}

	out, err := EnvelopeTransformer(nil, "404", apiErr)
	require.NoError(t, err)

	env, ok := out.(APIErrorEnvelope)
	require.True(t, ok)
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Equal(t, "task not found", env.Message)
	assert.NotNil(t, env.Details)
}

func TestNewError_DomainErrorMapping(t *testing.T) {
	RegisterErrorHandler()

	statusErr := huma.NewError(500, "fallback", domainerrors.NotFound("task not found"))

	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.GetStatus())
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "task not found", apiErr.Message)
}

func TestNewError_Fallback(t *testing.T) {
	RegisterErrorHandler()

	statusErr := huma.NewError(500, "boom", errors.New("opaque"))

	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.GetStatus())
	assert.Equal(t, "INTERNAL", apiErr.Code)
	assert.Equal(t, "boom", apiErr.Message)
	assert.Nil(t, apiErr.Details)
}

func TestNewError_SchemaViolation(t *testing.T) {
	RegisterErrorHandler()

	statusErr := huma.NewError(422, "validation failed",
		&huma.ErrorDetail{Message: "expected required property date to be present", Location: "body.date"},
		&huma.ErrorDetail{Message: "expected string", Location: "body.text"},
	)

	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.GetStatus())
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Equal(t, "validation failed", apiErr.Message)

	details, ok := apiErr.Details.([]*huma.ErrorDetail)
	require.True(t, ok)
	require.Len(t, details, 2)
	assert.Equal(t, "body.date", details[0].Location)
}
