package auth

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/momentumapp/momentum-server/internal/config"
)

// googleUserinfoURL is the OpenID Connect userinfo endpoint.
const googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Profile is the subset of the Google userinfo response we keep.
type Profile struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleClient drives the OAuth code exchange and profile fetch.
type GoogleClient struct {
	oauth *oauth2.Config

	// userinfoURL is overridable for tests.
	userinfoURL string
}

// NewGoogleClient creates a client from static credentials.
// Returns nil when credentials are absent; callers answer 503 in that case.
func NewGoogleClient(cfg config.GoogleConfig) *GoogleClient {
	if !cfg.Enabled() {
		return nil
	}

	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userinfoURL: googleUserinfoURL,
	}
}

// AuthURL returns the Google consent page URL for the given state token.
func (c *GoogleClient) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for the user's Google profile.
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	client := c.oauth.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.UnmarshalRead(resp.Body, &profile); err != nil {
		return nil, fmt.Errorf("parse userinfo: %w", err)
	}

	if profile.Sub == "" {
		return nil, fmt.Errorf("userinfo response missing subject")
	}

	return &profile, nil
}
