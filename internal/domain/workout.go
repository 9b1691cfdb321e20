package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workout is a single training session owned by one user. Exercise entries
// are attached after the session is started.
type Workout struct {
	ID        string
	UserID    string
	Date      time.Time
	Name      *string
	Notes     *string
	CreatedAt time.Time
}

// ExerciseSet records one exercise performed within a workout. Its volume,
// sets × reps × weight, is the unit every aggregate in the system sums.
type ExerciseSet struct {
	ID        string
	WorkoutID string
	Name      string
	Sets      int
	Reps      int
	Weight    float64
	CreatedAt time.Time
}

// Volume returns sets × reps × weight for this entry.
func (e ExerciseSet) Volume() float64 {
	return float64(e.Sets) * float64(e.Reps) * e.Weight
}

// WorkoutSummary is a workout row annotated with aggregates over its entries.
// TotalWeightLifted is zero, never absent, for workouts without entries.
type WorkoutSummary struct {
	ID                string
	UserID            string
	Date              time.Time
	Name              *string
	Notes             *string
	ExerciseCount     int
	TotalWeightLifted float64
	CreatedAt         time.Time
}

// WorkoutDetail bundles a workout with its exercise entries, read from a
// single snapshot so concurrent deletes cannot produce a torn result.
type WorkoutDetail struct {
	Workout   Workout
	Exercises []ExerciseSet
}

// WorkoutPatch carries the fields of a partial workout update.
type WorkoutPatch struct {
	Date  *time.Time
	Name  *string
	Notes *string
}

// IsEmpty reports whether the patch supplies no fields.
func (p WorkoutPatch) IsEmpty() bool {
	return p.Date == nil && p.Name == nil && p.Notes == nil
}

// ExercisePatch carries the fields of a partial exercise-entry update.
type ExercisePatch struct {
	Name   *string
	Sets   *int
	Reps   *int
	Weight *float64
}

// IsEmpty reports whether the patch supplies no fields.
func (p ExercisePatch) IsEmpty() bool {
	return p.Name == nil && p.Sets == nil && p.Reps == nil && p.Weight == nil
}

// WorkoutRepository captures persistence operations for workouts and their entries.
type WorkoutRepository interface {
	Create(ctx context.Context, workout Workout) error
	ListByUser(ctx context.Context, userID string) ([]WorkoutSummary, error)
	Detail(ctx context.Context, id string) (*WorkoutDetail, error)
	Update(ctx context.Context, id string, patch WorkoutPatch) error
	Delete(ctx context.Context, id string) error
	AddExercise(ctx context.Context, entry ExerciseSet) error
	UpdateExercise(ctx context.Context, id string, patch ExercisePatch) error
	DeleteExercise(ctx context.Context, id string) error
}

// StartWorkoutInput captures the payload for starting a session.
type StartWorkoutInput struct {
	UserID string
	Date   time.Time
	Name   *string
	Notes  *string
}

// ExerciseInput captures the payload for logging one exercise entry.
type ExerciseInput struct {
	Name   string
	Sets   int
	Reps   int
	Weight float64
}

// WorkoutService orchestrates workout workflows.
type WorkoutService struct {
	repo WorkoutRepository
}

// NewWorkoutService constructs a WorkoutService.
func NewWorkoutService(repo WorkoutRepository) *WorkoutService {
	return &WorkoutService{repo: repo}
}

// Start creates a workout session. An unknown user surfaces as ErrInvalidReference.
func (s *WorkoutService) Start(ctx context.Context, input StartWorkoutInput) (*Workout, error) {
	workout := Workout{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Date:      input.Date,
		Name:      input.Name,
		Notes:     input.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// UserWorkouts lists a user's workouts with entry counts and volume totals.
func (s *WorkoutService) UserWorkouts(ctx context.Context, userID string) ([]WorkoutSummary, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Detail fetches one workout together with its exercise entries.
func (s *WorkoutService) Detail(ctx context.Context, id string) (*WorkoutDetail, error) {
	detail, err := s.repo.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}
	return detail, nil
}

// Update applies a partial update to the workout row.
func (s *WorkoutService) Update(ctx context.Context, id string, patch WorkoutPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a workout. Deleting an absent ID succeeds.
func (s *WorkoutService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AddExercise logs one entry against an existing workout.
func (s *WorkoutService) AddExercise(ctx context.Context, workoutID string, input ExerciseInput) (*ExerciseSet, error) {
	entry := ExerciseSet{
		ID:        uuid.NewString(),
		WorkoutID: workoutID,
		Name:      input.Name,
		Sets:      input.Sets,
		Reps:      input.Reps,
		Weight:    input.Weight,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddExercise(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateExercise applies a partial update to one entry.
func (s *WorkoutService) UpdateExercise(ctx context.Context, id string, patch ExercisePatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}
	return s.repo.UpdateExercise(ctx, id, patch)
}

// DeleteExercise removes one entry. Deleting an absent ID succeeds.
func (s *WorkoutService) DeleteExercise(ctx context.Context, id string) error {
	return s.repo.DeleteExercise(ctx, id)
}
