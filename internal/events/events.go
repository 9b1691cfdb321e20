// Package events defines the payloads published through the outbox.
package events

import "time"

// WorkoutLogged is emitted when a workout session is created.
type WorkoutLogged struct {
	WorkoutID string    `json:"workout_id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Name      *string   `json:"name,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
}

// WorkoutViewed is emitted the first time a viewer marks a workout as seen.
// Repeat marks for the same pair publish nothing.
type WorkoutViewed struct {
	WorkoutID string    `json:"workout_id"`
	ViewerID  string    `json:"viewer_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}

// LeaderboardRefreshed is emitted after the materialized leaderboard is rebuilt.
type LeaderboardRefreshed struct {
	RefreshedAt time.Time `json:"refreshed_at"`
}
