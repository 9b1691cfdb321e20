package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/events"
	"example.com/fittrack/internal/observability"
)

// LeaderboardRepository provides the aggregation queries behind the
// materialized leaderboard.
type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

// Refresh rebuilds the leaderboard in a single upsert: per user with at
// least one exercise entry, summed volume, distinct workout-day count, and the
// most recent workout date. The inner join keeps users without entries out
// of the table entirely. The statement is atomic; a failure changes no rows.
func (r *LeaderboardRepository) Refresh(ctx context.Context) error {
	start := time.Now().UTC()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	const stmt = `INSERT INTO leaderboard (user_id, total_weight_lifted, workout_days_count, last_workout_date, updated_at)
        SELECT w.user_id,
               COALESCE(SUM(e.sets * e.reps * e.weight), 0),
               COUNT(DISTINCT w.workout_date),
               MAX(w.workout_date),
               NOW()
        FROM workouts w
        JOIN exercises e ON e.workout_id = w.id
        GROUP BY w.user_id
        ON CONFLICT (user_id) DO UPDATE SET
            total_weight_lifted = EXCLUDED.total_weight_lifted,
            workout_days_count = EXCLUDED.workout_days_count,
            last_workout_date = EXCLUDED.last_workout_date,
            updated_at = EXCLUDED.updated_at`

	if _, err := tx.Exec(ctx, stmt); err != nil {
		return mapError(err)
	}

	// Rows for users whose last qualifying exercise was deleted would
	// otherwise linger; the rebuild removes them.
	const prune = `DELETE FROM leaderboard l WHERE NOT EXISTS (
        SELECT 1 FROM workouts w JOIN exercises e ON e.workout_id = w.id
        WHERE w.user_id = l.user_id)`

	if _, err := tx.Exec(ctx, prune); err != nil {
		return mapError(err)
	}

	if err := insertOutbox(ctx, tx, "leaderboard", "global", "leaderboard.refreshed", "global", events.LeaderboardRefreshed{
		RefreshedAt: start,
	}); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	observability.RecordLeaderboardRefresh(start, time.Since(start))
	return nil
}

// Standings reads the top entries by total volume. Unscoped queries hit the
// materialized table and may trail the last Refresh; date-bounded queries
// recompute live over the inclusive window so they are never stale. Ordering
// between equal totals is whatever the store yields.
func (r *LeaderboardRepository) Standings(ctx context.Context, query domain.StandingsQuery) ([]domain.Standing, error) {
	if query.Windowed() {
		return r.liveStandings(ctx, query)
	}

	const materialized = `SELECT l.user_id, u.name, l.total_weight_lifted, l.workout_days_count, l.last_workout_date
        FROM leaderboard l
        JOIN users u ON u.id = l.user_id
        ORDER BY l.total_weight_lifted DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, materialized, query.Limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return scanStandings(rows)
}

func (r *LeaderboardRepository) liveStandings(ctx context.Context, query domain.StandingsQuery) ([]domain.Standing, error) {
	const live = `SELECT w.user_id, u.name,
            COALESCE(SUM(e.sets * e.reps * e.weight), 0) AS total_weight_lifted,
            COUNT(DISTINCT w.workout_date),
            MAX(w.workout_date)
        FROM workouts w
        JOIN exercises e ON e.workout_id = w.id
        JOIN users u ON u.id = w.user_id
        WHERE ($2::date IS NULL OR w.workout_date >= $2)
          AND ($3::date IS NULL OR w.workout_date <= $3)
        GROUP BY w.user_id, u.name
        ORDER BY total_weight_lifted DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, live, query.Limit, query.StartDate, query.EndDate)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return scanStandings(rows)
}

func scanStandings(rows pgx.Rows) ([]domain.Standing, error) {
	standings := make([]domain.Standing, 0)
	for rows.Next() {
		var s domain.Standing
		if err := rows.Scan(&s.UserID, &s.Name, &s.TotalWeightLifted, &s.WorkoutDaysCount, &s.LastWorkoutDate); err != nil {
			return nil, mapError(err)
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return standings, nil
}

// Rank returns the user's 1-based dense rank over the materialized table, or
// nil when the user has no leaderboard row.
func (r *LeaderboardRepository) Rank(ctx context.Context, userID string) (*int, error) {
	const query = `SELECT rank FROM (
            SELECT user_id, DENSE_RANK() OVER (ORDER BY total_weight_lifted DESC) AS rank
            FROM leaderboard) ranked
        WHERE ranked.user_id = $1`

	var rank int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return &rank, nil
}
