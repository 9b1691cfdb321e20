package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/domain"
)

// MeasurementRepository provides Postgres-backed persistence for body measurements.
type MeasurementRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a measurement row.
func (r *MeasurementRepository) Create(ctx context.Context, m domain.Measurement) error {
	const stmt = `INSERT INTO measurements (id, user_id, weight, bmi, body_fat_percentage, muscle_mass, recorded_on, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.pool.Exec(ctx, stmt,
		m.ID,
		m.UserID,
		m.Weight,
		m.BMI,
		m.BodyFatPercentage,
		m.MuscleMass,
		m.RecordedOn,
		m.CreatedAt,
	)
	return mapError(err)
}

// ListByUser returns a user's measurements, newest first.
func (r *MeasurementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Measurement, error) {
	const query = `SELECT id, user_id, weight, bmi, body_fat_percentage, muscle_mass, recorded_on, created_at
        FROM measurements WHERE user_id = $1
        ORDER BY recorded_on DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	measurements := make([]domain.Measurement, 0)
	for rows.Next() {
		var m domain.Measurement
		if err := rows.Scan(&m.ID, &m.UserID, &m.Weight, &m.BMI, &m.BodyFatPercentage, &m.MuscleMass, &m.RecordedOn, &m.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		measurements = append(measurements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return measurements, nil
}

// Update writes only the fields present in the patch.
func (r *MeasurementRepository) Update(ctx context.Context, id string, patch domain.MeasurementPatch) error {
	builder := newUpdateBuilder("measurements")
	if patch.Weight != nil {
		builder.Set("weight", *patch.Weight)
	}
	if patch.BMI != nil {
		builder.Set("bmi", *patch.BMI)
	}
	if patch.BodyFatPercentage != nil {
		builder.Set("body_fat_percentage", *patch.BodyFatPercentage)
	}
	if patch.MuscleMass != nil {
		builder.Set("muscle_mass", *patch.MuscleMass)
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

// Delete removes one measurement. Zero rows affected still succeeds.
func (r *MeasurementRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM measurements WHERE id = $1`, id)
	return mapError(err)
}
