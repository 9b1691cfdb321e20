package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/events"
	"example.com/fittrack/internal/observability"
)

// WorkoutRepository provides Postgres-backed persistence for workouts and
// their exercise entries.
type WorkoutRepository struct {
	pool *pgxpool.Pool
}

// Create persists the workout and records a workout.logged outbox event
// inside a single transaction.
func (r *WorkoutRepository) Create(ctx context.Context, workout domain.Workout) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	const stmt = `INSERT INTO workouts (id, user_id, workout_date, name, notes, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`

	if _, err := tx.Exec(ctx, stmt,
		workout.ID,
		workout.UserID,
		workout.Date,
		workout.Name,
		workout.Notes,
		workout.CreatedAt,
	); err != nil {
		return mapError(err)
	}

	if err := insertOutbox(ctx, tx, "workout", workout.ID, "workout.logged", workout.UserID, events.WorkoutLogged{
		WorkoutID: workout.ID,
		UserID:    workout.UserID,
		Date:      workout.Date,
		Name:      workout.Name,
		LoggedAt:  workout.CreatedAt,
	}); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	observability.RecordWorkoutLogged(workout.CreatedAt)
	return nil
}

// ListByUser returns a user's workouts, newest first, each annotated with
// its entry count and summed volume. Workouts without entries report zero.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutSummary, error) {
	const query = `SELECT w.id, w.user_id, w.workout_date, w.name, w.notes,
            COUNT(e.id), COALESCE(SUM(e.sets * e.reps * e.weight), 0), w.created_at
        FROM workouts w
        LEFT JOIN exercises e ON e.workout_id = w.id
        WHERE w.user_id = $1
        GROUP BY w.id
        ORDER BY w.workout_date DESC, w.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	summaries := make([]domain.WorkoutSummary, 0)
	for rows.Next() {
		var s domain.WorkoutSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.Name, &s.Notes, &s.ExerciseCount, &s.TotalWeightLifted, &s.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return summaries, nil
}

// Detail reads the workout row and its entries from one repeatable-read
// snapshot, so a concurrent delete cannot yield a torn result. Absent
// workouts return (nil, nil).
func (r *WorkoutRepository) Detail(ctx context.Context, id string) (*domain.WorkoutDetail, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, mapError(err)
	}
	defer tx.Rollback(ctx)

	const workoutQuery = `SELECT id, user_id, workout_date, name, notes, created_at
        FROM workouts WHERE id = $1`

	var detail domain.WorkoutDetail
	row := tx.QueryRow(ctx, workoutQuery, id)
	if err := row.Scan(&detail.Workout.ID, &detail.Workout.UserID, &detail.Workout.Date,
		&detail.Workout.Name, &detail.Workout.Notes, &detail.Workout.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mapError(tx.Commit(ctx))
		}
		return nil, mapError(err)
	}

	const entryQuery = `SELECT id, workout_id, name, sets, reps, weight, created_at
        FROM exercises WHERE workout_id = $1 ORDER BY created_at`

	rows, err := tx.Query(ctx, entryQuery, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	detail.Exercises = make([]domain.ExerciseSet, 0)
	for rows.Next() {
		var e domain.ExerciseSet
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps, &e.Weight, &e.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		detail.Exercises = append(detail.Exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapError(err)
	}
	return &detail, nil
}

// Update writes only the fields present in the patch.
func (r *WorkoutRepository) Update(ctx context.Context, id string, patch domain.WorkoutPatch) error {
	builder := newUpdateBuilder("workouts")
	if patch.Date != nil {
		builder.Set("workout_date", *patch.Date)
	}
	if patch.Name != nil {
		builder.Set("name", *patch.Name)
	}
	if patch.Notes != nil {
		builder.Set("notes", *patch.Notes)
	}
	if builder.Empty() {
		return domain.ErrEmptyPatch
	}

	stmt, args := builder.Build("id", id)
	tag, err := r.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a workout. Entries cascade; zero rows affected still succeeds.
func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	return mapError(err)
}

// AddExercise inserts one entry. A missing workout maps to
// domain.ErrInvalidReference, out-of-range numbers to domain.ErrInvalidValue.
func (r *WorkoutRepository) AddExercise(ctx context.Context, entry domain.ExerciseSet) error {
	const stmt = `INSERT INTO exercises (id, workout_id, name, sets, reps, weight, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.pool.Exec(ctx, stmt,
		entry.ID,
		entry.WorkoutID,
		entry.Name,
		entry.Sets,
		entry.Reps,
		entry.Weight,
		entry.CreatedAt,
	)
	return mapError(err)
}

// UpdateExercise writes only the fields present in the patch.
func (r *WorkoutRepository) UpdateExercise(ctx context.Context, id string, patch domain.ExercisePatch) error {
	builder := newUpdateBuilder("exercises")
	if patch.Name != nil {
		builder.Set("name", *patch.Name)
	}
	if patch.Sets != nil {
		builder.Set("sets", *patch.Sets)
	}
	if patch.Reps != nil {
		builder.Set("reps", *patch.Reps)
	}
	if patch.Weight != nil {
		builder.Set("weight", *patch.Weight)
	}
	if builder.Empty() {
		return domain.ErrEmptyPatch
	}

	stmt, args := builder.Build("id", id)
	tag, err := r.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteExercise removes one entry. Zero rows affected still succeeds.
func (r *WorkoutRepository) DeleteExercise(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	return mapError(err)
}
