package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/http/response"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Current user",
		Description: "Returns the account behind the session cookie",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetCurrentUser)

	// Browser-facing redirect endpoints stay on plain chi: they answer
	// with redirects and cookies, not enveloped JSON.
	limited := s.router.With(RateLimitMiddleware(s.authRateLimiter, s.logger))
	limited.Get("/auth/google", s.handleGoogleLogin)
	limited.Get("/auth/google/callback", s.handleGoogleCallback)
	limited.Get("/auth/logout", s.handleLogout)
	limited.Get("/auth/failed", s.handleAuthFailed)
}

// handleGetCurrentUser answers /auth/me from the session cookie.
func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("Not logged in")
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

// handleGoogleLogin redirects the browser to the Google consent page.
func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.services.Auth.Enabled() {
		response.ServiceUnavailable(w, "Sign-in is not configured on this server", s.logger)
		return
	}

	redirectTo := sanitizeRedirect(r.URL.Query().Get("redirect"))

	authURL, err := s.services.Auth.BeginLogin(redirectTo)
	if err != nil {
		s.logger.Error("Failed to begin login", "error", err)
		response.InternalError(w, "Could not start sign-in", s.logger)
		return
	}

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// handleGoogleCallback finishes the OAuth flow and opens the session.
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.services.Auth.Enabled() {
		response.ServiceUnavailable(w, "Sign-in is not configured on this server", s.logger)
		return
	}

	query := r.URL.Query()
	if query.Get("error") != "" || query.Get("code") == "" {
		// User denied consent or the provider errored
		http.Redirect(w, r, "/auth/failed", http.StatusTemporaryRedirect)
		return
	}

	session, redirectTo, err := s.services.Auth.CompleteLogin(r.Context(), query.Get("state"), query.Get("code"))
	if err != nil {
		s.logger.Warn("Login callback failed", "error", err)
		http.Redirect(w, r, "/auth/failed", http.StatusTemporaryRedirect)
		return
	}

	http.SetCookie(w, s.sessionCookie(session))
	http.Redirect(w, r, s.cfg.Client.URL+redirectTo, http.StatusTemporaryRedirect)
}

// handleLogout destroys the session and sends the browser back to the app.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		if err := s.services.Auth.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("Logout failed", "error", err)
		}
	}

	expired := s.expiredSessionCookie()
	http.SetCookie(w, &expired)
	http.Redirect(w, r, s.cfg.Client.URL, http.StatusTemporaryRedirect)
}

// handleAuthFailed is the landing endpoint for failed sign-in attempts.
func (s *Server) handleAuthFailed(w http.ResponseWriter, _ *http.Request) {
	response.Unauthorized(w, "Sign-in failed. Please try again.", s.logger)
}

// sessionCookie builds the HTTP-only session cookie for a fresh login.
func (s *Server) sessionCookie(session *domain.Session) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// expiredSessionCookie clears the session cookie on the browser.
func (s *Server) expiredSessionCookie() http.Cookie {
	return http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// sanitizeRedirect restricts post-login redirects to in-app paths.
func sanitizeRedirect(redirect string) string {
	if redirect == "" || !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") {
		return "/"
	}
	return redirect
}
