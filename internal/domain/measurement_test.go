package domain

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubMeasurementRepo struct {
	created *Measurement
	updates int
}

func (s *stubMeasurementRepo) Create(ctx context.Context, m Measurement) error {
	s.created = &m
	return nil
}

func (s *stubMeasurementRepo) ListByUser(ctx context.Context, userID string) ([]Measurement, error) {
	return nil, nil
}

func (s *stubMeasurementRepo) Update(ctx context.Context, id string, patch MeasurementPatch) error {
	s.updates++
	return nil
}

func (s *stubMeasurementRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func TestAddMeasurementAssignsID(t *testing.T) {
	repo := &stubMeasurementRepo{}
	service := NewMeasurementService(repo)

	m, err := service.Add(context.Background(), MeasurementInput{
		UserID:     "user-1",
		Weight:     82.5,
		RecordedOn: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if m.ID == "" {
		t.Fatal("expected generated ID")
	}
	if repo.created == nil || repo.created.Weight != 82.5 {
		t.Fatalf("unexpected stored measurement: %+v", repo.created)
	}
}

func TestMeasurementUpdateEmptyPatch(t *testing.T) {
	repo := &stubMeasurementRepo{}
	service := NewMeasurementService(repo)

	if err := service.Update(context.Background(), "m-1", MeasurementPatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch got %v", err)
	}
	if repo.updates != 0 {
		t.Fatal("store touched for empty patch")
	}
}
