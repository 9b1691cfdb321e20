package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Measurement is a body measurement snapshot with its own lifecycle,
// independent of workouts.
type Measurement struct {
	ID                string
	UserID            string
	Weight            float64
	BMI               *float64
	BodyFatPercentage *float64
	MuscleMass        *float64
	RecordedOn        time.Time
	CreatedAt         time.Time
}

// MeasurementPatch carries the fields of a partial measurement update.
type MeasurementPatch struct {
	Weight            *float64
	BMI               *float64
	BodyFatPercentage *float64
	MuscleMass        *float64
}

// IsEmpty reports whether the patch supplies no fields.
func (p MeasurementPatch) IsEmpty() bool {
	return p.Weight == nil && p.BMI == nil && p.BodyFatPercentage == nil && p.MuscleMass == nil
}

// MeasurementRepository captures persistence operations for measurements.
type MeasurementRepository interface {
	Create(ctx context.Context, m Measurement) error
	ListByUser(ctx context.Context, userID string) ([]Measurement, error)
	Update(ctx context.Context, id string, patch MeasurementPatch) error
	Delete(ctx context.Context, id string) error
}

// MeasurementInput captures the payload for recording a measurement.
type MeasurementInput struct {
	UserID            string
	Weight            float64
	BMI               *float64
	BodyFatPercentage *float64
	MuscleMass        *float64
	RecordedOn        time.Time
}

// MeasurementService orchestrates measurement workflows.
type MeasurementService struct {
	repo MeasurementRepository
}

// NewMeasurementService constructs a MeasurementService.
func NewMeasurementService(repo MeasurementRepository) *MeasurementService {
	return &MeasurementService{repo: repo}
}

// Add records a measurement for a user.
func (s *MeasurementService) Add(ctx context.Context, input MeasurementInput) (*Measurement, error) {
	m := Measurement{
		ID:                uuid.NewString(),
		UserID:            input.UserID,
		Weight:            input.Weight,
		BMI:               input.BMI,
		BodyFatPercentage: input.BodyFatPercentage,
		MuscleMass:        input.MuscleMass,
		RecordedOn:        input.RecordedOn,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns a user's measurements, newest first.
func (s *MeasurementService) List(ctx context.Context, userID string) ([]Measurement, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update applies a partial update to one measurement.
func (s *MeasurementService) Update(ctx context.Context, id string, patch MeasurementPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes one measurement. Deleting an absent ID succeeds.
func (s *MeasurementService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
