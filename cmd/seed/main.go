// Package main provides a tool to seed the database with demo data.
//
// This creates a demo user with two weeks of tasks and diary entries to
// exercise the stats dashboard during development.
//
// Usage:
//
//	DB_PATH=~/Momentum/data/db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/momentumapp/momentum-server/internal/domain"
	"github.com/momentumapp/momentum-server/internal/id"
	"github.com/momentumapp/momentum-server/internal/store"
)

var taskTexts = []string{
	"Morning run",
	"Review pull requests",
	"Water the plants",
	"Read 20 pages",
	"Inbox zero",
	"Plan tomorrow",
	"Call the dentist",
	"Stretch for 10 minutes",
}

var diaryTexts = []string{
	"Got a lot done today. The morning routine is finally sticking.",
	"Slow day, but finished the one thing that mattered.",
	"Spent most of the afternoon in meetings. Tired.",
	"Great run this morning, felt sharp all day.",
	"Short entry today. Need more sleep.",
}

var moods = []domain.Mood{
	domain.MoodHappy,
	domain.MoodCalm,
	domain.MoodFocused,
	domain.MoodTired,
	domain.MoodMeh,
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Momentum/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	user, err := ensureDemoUser(ctx, s)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	fmt.Printf("Seeding data for user: %s (%s)\n", user.Name, user.ID)

	now := time.Now().UTC()
	tasksCreated := 0
	entriesCreated := 0

	for day := 13; day >= 0; day-- {
		date := now.AddDate(0, 0, -day).Format(domain.DateLayout)

		// 2-4 tasks per day, most of them completed on past days
		numTasks := 2 + rng.Intn(3)
		for n := 0; n < numTasks; n++ {
			taskID, err := id.Generate("tsk")
			if err != nil {
				log.Fatalf("Failed to generate task ID: %v", err)
			}

			task := &domain.Task{
				ID:        taskID,
				OwnerID:   user.ID,
				Date:      date,
				Text:      taskTexts[rng.Intn(len(taskTexts))],
				Priority:  []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}[rng.Intn(3)],
				Labels:    []string{[]string{"health", "work", "home"}[rng.Intn(3)]},
				Order:     tasksCreated,
				CreatedAt: now.AddDate(0, 0, -day),
				UpdatedAt: now.AddDate(0, 0, -day),
			}
			if day > 0 && rng.Float32() < 0.7 {
				task.Done = true
				task.CompletedOn = []string{date}
			}

			if err := s.SaveTask(ctx, task); err != nil {
				log.Fatalf("Failed to save task: %v", err)
			}
			tasksCreated++
		}

		// Diary entry on most days
		if rng.Float32() < 0.8 {
			entry := &domain.DiaryEntry{
				OwnerID:   user.ID,
				Date:      date,
				Text:      diaryTexts[rng.Intn(len(diaryTexts))],
				Mood:      moods[rng.Intn(len(moods))],
				CreatedAt: now.AddDate(0, 0, -day),
				UpdatedAt: now.AddDate(0, 0, -day),
			}
			if err := s.PutEntry(ctx, entry); err != nil {
				log.Fatalf("Failed to save diary entry: %v", err)
			}
			entriesCreated++
		}
	}

	fmt.Printf("Created %d tasks and %d diary entries\n", tasksCreated, entriesCreated)
}

// ensureDemoUser returns the demo user, creating it on first run.
func ensureDemoUser(ctx context.Context, s *store.Store) (*domain.User, error) {
	const googleID = "demo-google-id"

	if user, err := s.GetUserByGoogleID(ctx, googleID); err == nil {
		return user, nil
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(userID, googleID, "demo@example.com", "Demo User", "")
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
