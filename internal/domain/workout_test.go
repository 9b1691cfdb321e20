package domain

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubWorkoutRepo struct {
	created *Workout
	detail  *WorkoutDetail
	updates int
	entries []ExerciseSet
}

func (s *stubWorkoutRepo) Create(ctx context.Context, workout Workout) error {
	s.created = &workout
	return nil
}

func (s *stubWorkoutRepo) ListByUser(ctx context.Context, userID string) ([]WorkoutSummary, error) {
	return nil, nil
}

func (s *stubWorkoutRepo) Detail(ctx context.Context, id string) (*WorkoutDetail, error) {
	return s.detail, nil
}

func (s *stubWorkoutRepo) Update(ctx context.Context, id string, patch WorkoutPatch) error {
	s.updates++
	return nil
}

func (s *stubWorkoutRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubWorkoutRepo) AddExercise(ctx context.Context, entry ExerciseSet) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubWorkoutRepo) UpdateExercise(ctx context.Context, id string, patch ExercisePatch) error {
	s.updates++
	return nil
}

func (s *stubWorkoutRepo) DeleteExercise(ctx context.Context, id string) error {
	return nil
}

func TestExerciseVolume(t *testing.T) {
	bench := ExerciseSet{Sets: 3, Reps: 10, Weight: 50}
	rows := ExerciseSet{Sets: 3, Reps: 8, Weight: 60}

	if got := bench.Volume(); got != 1500 {
		t.Fatalf("expected 1500 got %v", got)
	}
	if got := bench.Volume() + rows.Volume(); got != 2940 {
		t.Fatalf("expected session total 2940 got %v", got)
	}

	bodyweight := ExerciseSet{Sets: 3, Reps: 12, Weight: 0}
	if got := bodyweight.Volume(); got != 0 {
		t.Fatalf("zero-weight entry should contribute 0, got %v", got)
	}
}

func TestStartWorkoutAssignsID(t *testing.T) {
	repo := &stubWorkoutRepo{}
	service := NewWorkoutService(repo)

	workout, err := service.Start(context.Background(), StartWorkoutInput{
		UserID: "user-1",
		Date:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if workout.ID == "" {
		t.Fatal("expected generated ID")
	}
	if repo.created == nil || repo.created.UserID != "user-1" {
		t.Fatalf("unexpected stored workout: %+v", repo.created)
	}
}

func TestWorkoutDetailNotFound(t *testing.T) {
	service := NewWorkoutService(&stubWorkoutRepo{})

	if _, err := service.Detail(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestWorkoutUpdateEmptyPatch(t *testing.T) {
	repo := &stubWorkoutRepo{}
	service := NewWorkoutService(repo)

	if err := service.Update(context.Background(), "w-1", WorkoutPatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch got %v", err)
	}
	if err := service.UpdateExercise(context.Background(), "e-1", ExercisePatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("store touched %d times for empty patches", repo.updates)
	}
}
