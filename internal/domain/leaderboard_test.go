package domain

import (
	"context"
	"testing"
	"time"
)

type stubLeaderboardRepo struct {
	lastQuery StandingsQuery
	rank      *int
}

func (s *stubLeaderboardRepo) Refresh(ctx context.Context) error {
	return nil
}

func (s *stubLeaderboardRepo) Standings(ctx context.Context, query StandingsQuery) ([]Standing, error) {
	s.lastQuery = query
	return nil, nil
}

func (s *stubLeaderboardRepo) Rank(ctx context.Context, userID string) (*int, error) {
	return s.rank, nil
}

func TestStandingsDefaultLimit(t *testing.T) {
	repo := &stubLeaderboardRepo{}
	service := NewLeaderboardService(repo)

	if _, err := service.Standings(context.Background(), StandingsQuery{}); err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if repo.lastQuery.Limit != DefaultStandingsLimit {
		t.Fatalf("expected default limit %d got %d", DefaultStandingsLimit, repo.lastQuery.Limit)
	}
}

func TestStandingsQueryWindowed(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	if (StandingsQuery{}).Windowed() {
		t.Fatal("unscoped query reported as windowed")
	}
	if !(StandingsQuery{StartDate: &start}).Windowed() {
		t.Fatal("start-bounded query not reported as windowed")
	}
	if !(StandingsQuery{EndDate: &start}).Windowed() {
		t.Fatal("end-bounded query not reported as windowed")
	}
}

func TestRankAbsentUser(t *testing.T) {
	service := NewLeaderboardService(&stubLeaderboardRepo{})

	rank, err := service.Rank(context.Background(), "missing")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if rank != nil {
		t.Fatalf("expected nil rank got %d", *rank)
	}
}
