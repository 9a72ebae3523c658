// Package auth implements the Google sign-in flow: OAuth state tokens and
// the identity-provider client.
package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	stateIssuer   = "momentum-server"
	stateAudience = "momentum-oauth"

	// stateLifetime bounds how long a login redirect may take. Anything
	// longer and the user restarts the flow.
	stateLifetime = 10 * time.Minute
)

// StateService issues and verifies the opaque state parameter carried
// through the OAuth redirect. Tokens are PASETO v4.local, encrypted with a
// per-process key: state only has to survive one redirect round trip, so a
// restart invalidating in-flight logins is acceptable.
type StateService struct {
	symmetricKey paseto.V4SymmetricKey
}

// NewStateService creates a state service with a fresh random key.
func NewStateService() *StateService {
	return &StateService{
		symmetricKey: paseto.NewV4SymmetricKey(),
	}
}

// Issue creates a state token carrying the post-login redirect path.
func (s *StateService) Issue(redirectTo string) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(stateIssuer)
	token.SetAudience(stateAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(stateLifetime))

	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("redirect_to", redirectTo)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Verify checks a state token and returns the redirect path it carries.
func (s *StateService) Verify(stateToken string) (string, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(stateAudience))
	parser.AddRule(paseto.IssuedBy(stateIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, stateToken, nil)
	if err != nil {
		return "", fmt.Errorf("invalid state token: %w", err)
	}

	var redirectTo string
	if err := token.Get("redirect_to", &redirectTo); err != nil {
		return "", fmt.Errorf("parse state claims: %w", err)
	}

	return redirectTo, nil
}
