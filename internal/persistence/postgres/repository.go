// Package postgres provides pgx-backed persistence for the fitness tracker.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository bundles the connection pool shared by the per-resource
// repositories. Each operation acquires from the pool and releases on every
// exit path; nothing holds a connection between requests.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Users returns the account repository view.
func (r *Repository) Users() *UserRepository { return &UserRepository{pool: r.pool} }

// Workouts returns the workout repository view.
func (r *Repository) Workouts() *WorkoutRepository { return &WorkoutRepository{pool: r.pool} }

// Measurements returns the measurement repository view.
func (r *Repository) Measurements() *MeasurementRepository {
	return &MeasurementRepository{pool: r.pool}
}

// Social returns the follow-graph and feed repository view.
func (r *Repository) Social() *SocialRepository { return &SocialRepository{pool: r.pool} }

// Leaderboard returns the aggregation repository view.
func (r *Repository) Leaderboard() *LeaderboardRepository {
	return &LeaderboardRepository{pool: r.pool}
}

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic string
}

var eventCatalog = map[string]EventMetadata{
	"workout.logged":        {Topic: "fitness_workouts"},
	"workout.viewed":        {Topic: "fitness_workout_views"},
	"leaderboard.refreshed": {Topic: "fitness_leaderboard"},
}

// insertOutbox records an event row inside the caller's transaction so the
// write and its event commit or roll back together.
func insertOutbox(ctx context.Context, tx pgx.Tx, aggregateType, aggregateID, eventType, partitionKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta, ok := eventCatalog[eventType]
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload)
        VALUES ($1,$2,$3,$4,$5,$6)`

	_, err = tx.Exec(ctx, stmt, aggregateType, aggregateID, eventType, meta.Topic, partitionKey, body)
	return err
}
