package domain

import "time"

// Theme is a UI color scheme preference.
type Theme string

const (
	// ThemeLight is the default light color scheme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color scheme.
	ThemeDark Theme = "dark"
)

// ValidTheme reports whether t is a recognized theme value.
func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

// User represents an account established through Google sign-in.
// The Google subject ID is the federation key; everything else is
// profile data refreshed on each login.
type User struct {
	ID        string    `json:"id"`
	GoogleID  string    `json:"google_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Theme     Theme     `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a user with defaults applied.
func NewUser(id, googleID, email, name, avatarURL string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		GoogleID:  googleID,
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		Theme:     ThemeLight,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RefreshProfile updates identity-provider profile fields if they changed.
// Returns true if anything was modified.
func (u *User) RefreshProfile(email, name, avatarURL string) bool {
	changed := false
	if email != "" && u.Email != email {
		u.Email = email
		changed = true
	}
	if name != "" && u.Name != name {
		u.Name = name
		changed = true
	}
	if avatarURL != "" && u.AvatarURL != avatarURL {
		u.AvatarURL = avatarURL
		changed = true
	}
	if changed {
		u.UpdatedAt = time.Now()
	}
	return changed
}
