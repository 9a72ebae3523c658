package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	svc := NewStateService()

	token, err := svc.Issue("/today")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	redirectTo, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "/today", redirectTo)
}

func TestStateVerify_Garbage(t *testing.T) {
	svc := NewStateService()

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestStateVerify_WrongKey(t *testing.T) {
	issuer := NewStateService()
	verifier := NewStateService()

	token, err := issuer.Issue("/")
	require.NoError(t, err)

	// A different process key must reject the token
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}
