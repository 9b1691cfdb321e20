package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/events"
)

// SocialRepository provides Postgres-backed persistence for the follow graph,
// the workout feed, and per-viewer seen state.
type SocialRepository struct {
	pool *pgxpool.Pool
}

// Follow inserts a follow edge. A duplicate edge maps to domain.ErrDuplicate,
// an unknown user to domain.ErrInvalidReference.
func (r *SocialRepository) Follow(ctx context.Context, followerID, followingID string) error {
	const stmt = `INSERT INTO user_follows (follower_id, following_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, stmt, followerID, followingID)
	return mapError(err)
}

// Unfollow removes a follow edge. Removing an absent edge succeeds.
func (r *SocialRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	const stmt = `DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2`

	_, err := r.pool.Exec(ctx, stmt, followerID, followingID)
	return mapError(err)
}

// Followers lists accounts with an edge pointing at the given user.
func (r *SocialRepository) Followers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	const query = `SELECT u.id, u.name, u.email
        FROM user_follows f
        JOIN users u ON u.id = f.follower_id
        WHERE f.following_id = $1
        ORDER BY f.created_at DESC`

	return r.listSummaries(ctx, query, userID)
}

// Following lists accounts the given user points an edge at.
func (r *SocialRepository) Following(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	const query = `SELECT u.id, u.name, u.email
        FROM user_follows f
        JOIN users u ON u.id = f.following_id
        WHERE f.follower_id = $1
        ORDER BY f.created_at DESC`

	return r.listSummaries(ctx, query, userID)
}

func (r *SocialRepository) listSummaries(ctx context.Context, query, userID string) ([]domain.UserSummary, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	summaries := make([]domain.UserSummary, 0)
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, mapError(err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return summaries, nil
}

// IsFollowing reports whether the edge follower→following exists.
func (r *SocialRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM user_follows WHERE follower_id = $1 AND following_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, followerID, followingID).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

// Feed returns workouts authored by the viewer's followees, newest first,
// annotated with author identity and volume aggregates. The viewed exclusion
// is a semi-join applied before LIMIT/OFFSET so limit counts unseen items only.
func (r *SocialRepository) Feed(ctx context.Context, viewerID string, query domain.FeedQuery) ([]domain.FeedItem, error) {
	const feedQuery = `SELECT w.id, w.user_id, u.name, w.workout_date, w.name, w.notes,
            COUNT(e.id), COALESCE(SUM(e.sets * e.reps * e.weight), 0), w.created_at
        FROM workouts w
        JOIN user_follows f ON f.following_id = w.user_id AND f.follower_id = $1
        JOIN users u ON u.id = w.user_id
        LEFT JOIN exercises e ON e.workout_id = w.id
        WHERE $4::boolean OR NOT EXISTS (
            SELECT 1 FROM workout_views v WHERE v.workout_id = w.id AND v.viewer_id = $1)
        GROUP BY w.id, u.id
        ORDER BY w.workout_date DESC, w.created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, feedQuery, viewerID, query.Limit, query.Offset, query.IncludeViewed)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]domain.FeedItem, 0, query.Limit)
	for rows.Next() {
		var item domain.FeedItem
		if err := rows.Scan(&item.WorkoutID, &item.AuthorID, &item.AuthorName, &item.Date,
			&item.Name, &item.Notes, &item.ExerciseCount, &item.TotalVolume, &item.LoggedAt); err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

// MarkViewed records that the viewer has seen the workout. The insert is
// idempotent; a workout.viewed outbox event is written only when a new row
// actually landed, in the same transaction.
func (r *SocialRepository) MarkViewed(ctx context.Context, workoutID, viewerID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	const stmt = `INSERT INTO workout_views (workout_id, viewer_id) VALUES ($1, $2)
        ON CONFLICT (workout_id, viewer_id) DO NOTHING`

	tag, err := tx.Exec(ctx, stmt, workoutID, viewerID)
	if err != nil {
		return mapError(err)
	}

	if tag.RowsAffected() > 0 {
		if err := insertOutbox(ctx, tx, "workout", workoutID, "workout.viewed", viewerID, events.WorkoutViewed{
			WorkoutID: workoutID,
			ViewerID:  viewerID,
			ViewedAt:  time.Now().UTC(),
		}); err != nil {
			return mapError(err)
		}
	}

	return mapError(tx.Commit(ctx))
}
