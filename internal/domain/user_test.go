package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTheme(t *testing.T) {
	assert.True(t, ValidTheme(ThemeLight))
	assert.True(t, ValidTheme(ThemeDark))
	assert.False(t, ValidTheme("solarized"))
	assert.False(t, ValidTheme(""))
}

func TestNewUser(t *testing.T) {
	u := NewUser("usr-1", "goog-1", "a@example.com", "Ada", "https://img.example.com/a.png")

	assert.Equal(t, "usr-1", u.ID)
	assert.Equal(t, "goog-1", u.GoogleID)
	assert.Equal(t, ThemeLight, u.Theme)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestRefreshProfile(t *testing.T) {
	u := NewUser("usr-1", "goog-1", "a@example.com", "Ada", "")
	before := u.UpdatedAt

	// Unchanged values report no modification.
	assert.False(t, u.RefreshProfile("a@example.com", "Ada", ""))
	assert.Equal(t, before, u.UpdatedAt)

	assert.True(t, u.RefreshProfile("a@example.com", "Ada Lovelace", "https://img.example.com/new.png"))
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "https://img.example.com/new.png", u.AvatarURL)

	// Empty provider values never clear stored fields.
	assert.False(t, u.RefreshProfile("", "", ""))
	assert.Equal(t, "a@example.com", u.Email)
}
