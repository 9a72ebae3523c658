package domain

import (
	"strings"
	"time"
)

// Mood is an optional feeling tag on a diary entry.
type Mood string

// The closed set of recognized moods.
const (
	MoodSad      Mood = "sad"
	MoodMeh      Mood = "meh"
	MoodCalm     Mood = "calm"
	MoodHappy    Mood = "happy"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
	MoodAnxious  Mood = "anxious"
	MoodExcited  Mood = "excited"
	MoodFocused  Mood = "focused"
	MoodAngry    Mood = "angry"
)

// Moods lists every recognized mood value.
var Moods = []Mood{
	MoodSad, MoodMeh, MoodCalm, MoodHappy, MoodTired,
	MoodStressed, MoodAnxious, MoodExcited, MoodFocused, MoodAngry,
}

// ValidMood reports whether m is a recognized mood value.
// The empty mood is valid (mood is optional).
func ValidMood(m Mood) bool {
	if m == "" {
		return true
	}
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// DiaryEntry is one diary record, unique per (owner, date).
type DiaryEntry struct {
	OwnerID   string    `json:"owner_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Text      string    `json:"text"`
	Mood      Mood      `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBlank reports whether the entry has no meaningful text.
// Blank entries do not count toward diary streaks or word metrics.
func (e *DiaryEntry) IsBlank() bool {
	return strings.TrimSpace(e.Text) == ""
}

// WordCount returns the whitespace-split token count of the entry text.
func (e *DiaryEntry) WordCount() int {
	return len(strings.Fields(e.Text))
}
