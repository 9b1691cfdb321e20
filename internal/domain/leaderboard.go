package domain

import (
	"context"
	"time"
)

// Standing is one leaderboard row joined to the account it ranks.
type Standing struct {
	UserID            string
	Name              string
	TotalWeightLifted float64
	WorkoutDaysCount  int
	LastWorkoutDate   *time.Time
}

// StandingsQuery scopes a leaderboard read. When either date bound is set
// the standings are recomputed live over the window instead of read from the
// materialized table.
type StandingsQuery struct {
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
}

// Windowed reports whether the query carries a date bound.
func (q StandingsQuery) Windowed() bool {
	return q.StartDate != nil || q.EndDate != nil
}

// DefaultStandingsLimit bounds leaderboard reads when no limit is supplied.
const DefaultStandingsLimit = 10

// LeaderboardRepository captures the aggregation queries behind the leaderboard.
type LeaderboardRepository interface {
	Refresh(ctx context.Context) error
	Standings(ctx context.Context, query StandingsQuery) ([]Standing, error)
	Rank(ctx context.Context, userID string) (*int, error)
}

// LeaderboardService orchestrates leaderboard reads and refreshes.
type LeaderboardService struct {
	repo LeaderboardRepository
}

// NewLeaderboardService constructs a LeaderboardService.
func NewLeaderboardService(repo LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

// Refresh recomputes the materialized leaderboard in one upsert statement.
// Users without exercise entries drop out of the table rather than being
// zeroed. Concurrent refreshes race harmlessly: the recomputation is
// idempotent and the last write wins.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	return s.repo.Refresh(ctx)
}

// Standings returns the top entries by total volume. Unscoped reads come
// from the materialized table and reflect the last Refresh; windowed reads
// recompute live so a date-bounded view is never stale.
func (s *LeaderboardService) Standings(ctx context.Context, query StandingsQuery) ([]Standing, error) {
	if query.Limit <= 0 {
		query.Limit = DefaultStandingsLimit
	}
	return s.repo.Standings(ctx, query)
}

// Rank returns the user's 1-based dense rank by descending total volume, or
// nil when the user has no leaderboard row. Freshness follows the last Refresh.
func (s *LeaderboardService) Rank(ctx context.Context, userID string) (*int, error) {
	return s.repo.Rank(ctx, userID)
}
