package api

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/http/response"
)

// exportFilename is the attachment name for account data downloads.
const exportFilename = "momentum-export.json"

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "updateTheme",
		Method:      http.MethodPatch,
		Path:        "/api/me/theme",
		Summary:     "Update theme",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateTheme)

	// The export download serves the raw bundle, so it bypasses huma and
	// the response envelope.
	s.router.Get("/api/me/export", s.handleExportData)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAccount",
		Method:      http.MethodDelete,
		Path:        "/api/me",
		Summary:     "Delete account",
		Description: "Erases the account and everything it owns; the session cookie is cleared",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteAccount)
}

// === DTOs ===

// UserResponse contains account data in API responses.
type UserResponse struct {
	ID        string       `json:"id" doc:"User ID"`
	Email     string       `json:"email" doc:"Email address"`
	Name      string       `json:"name" doc:"Display name"`
	AvatarURL string       `json:"avatar_url,omitempty" doc:"Profile picture URL"`
	Theme     domain.Theme `json:"theme" doc:"Color scheme preference"`
	CreatedAt time.Time    `json:"created_at" doc:"Account creation time"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Theme:     u.Theme,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateThemeRequest is the request body for updating the theme.
type UpdateThemeRequest struct {
	Theme domain.Theme `json:"theme" required:"true" enum:"light,dark" doc:"Color scheme"`
}

// UpdateThemeInput wraps the theme request for Huma.
type UpdateThemeInput struct {
	Body UpdateThemeRequest
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// MessageResponse contains a simple success message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// DeleteAccountOutput clears the session cookie alongside the confirmation.
type DeleteAccountOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      MessageResponse
}

// === Handlers ===

func (s *Server) handleUpdateTheme(ctx context.Context, input *UpdateThemeInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Account.UpdateTheme(ctx, userID, input.Body.Theme)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

// handleExportData serves the account bundle as a bare JSON attachment.
func (s *Server) handleExportData(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Not logged in", s.logger)
		return
	}

	export, err := s.services.Account.Export(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	if err := json.MarshalWrite(w, export); err != nil {
		s.logger.Error("Failed to encode export", "error", err)
	}
}

func (s *Server) handleDeleteAccount(ctx context.Context, _ *struct{}) (*DeleteAccountOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Account.DeleteAccount(ctx, userID); err != nil {
		return nil, err
	}

	return &DeleteAccountOutput{
		SetCookie: s.expiredSessionCookie(),
		Body:      MessageResponse{Message: "Account deleted"},
	}, nil
}
