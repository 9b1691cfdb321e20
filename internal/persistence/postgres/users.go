package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/domain"
)

// UserRepository provides Postgres-backed persistence for accounts.
type UserRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, name, email, password_hash, age, gender, fitness_level, profile_picture_key, created_at, updated_at`

// Create inserts an account row. A taken email maps to domain.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (id, name, email, password_hash, age, gender, fitness_level, profile_picture_key, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.pool.Exec(ctx, stmt,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.Gender,
		user.FitnessLevel,
		user.ProfilePictureKey,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return mapError(err)
}

// Get retrieves an account by ID. Absent rows return (nil, nil).
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanUser(row)
}

// GetByCredentials resolves an email/credential pair. Absent rows return (nil, nil).
func (r *UserRepository) GetByCredentials(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND password_hash = $2`

	row := r.pool.QueryRow(ctx, query, email, passwordHash)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.Gender,
		&user.FitnessLevel,
		&user.ProfilePictureKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return &user, nil
}

// Update writes only the fields present in the patch. A target that no
// longer exists maps to domain.ErrNotFound.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) error {
	builder := newUpdateBuilder("users")
	if patch.Name != nil {
		builder.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		builder.Set("email", *patch.Email)
	}
	if patch.FitnessLevel != nil {
		builder.Set("fitness_level", *patch.FitnessLevel)
	}
	if builder.Empty() {
		return domain.ErrEmptyPatch
	}
	builder.Set("updated_at", time.Now().UTC())

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

// Delete removes an account. Child rows cascade; zero rows affected still succeeds.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return mapError(err)
}

// SetProfilePictureKey stores or clears the blob-store key on the account.
func (r *UserRepository) SetProfilePictureKey(ctx context.Context, id string, key *string) error {
	const stmt = `UPDATE users SET profile_picture_key = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, stmt, key, time.Now().UTC(), id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
