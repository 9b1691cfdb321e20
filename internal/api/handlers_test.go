package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"example.com/fittrack/internal/auth"
	"example.com/fittrack/internal/domain"
)

type fixtures struct {
	users       *fakeUserRepo
	social      *fakeSocialRepo
	leaderboard *fakeLeaderboardRepo
	workouts    *fakeWorkoutRepo
}

func newTestMux() (*http.ServeMux, *fixtures) {
	f := &fixtures{
		users:       &fakeUserRepo{},
		social:      &fakeSocialRepo{},
		leaderboard: &fakeLeaderboardRepo{},
		workouts:    &fakeWorkoutRepo{},
	}

	handler := NewHandler(HandlerConfig{
		Users:        domain.NewUserService(f.users, &fakeBlobStore{}),
		Workouts:     domain.NewWorkoutService(f.workouts),
		Measurements: domain.NewMeasurementService(&fakeMeasurementRepo{}),
		Social:       domain.NewSocialService(f.social),
		Leaderboard:  domain.NewLeaderboardService(f.leaderboard),
		AuthConfig:   auth.Config{Secret: "test-secret", Issuer: "test", TokenTTL: time.Hour},
		PictureTTL:   time.Hour,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, f
}

func TestRegisterSuccess(t *testing.T) {
	mux, _ := newTestMux()

	body := `{"name":"Ada","email":"ada@example.com","password_hash":"hash","age":30,"gender":"female"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp UserView
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected generated id")
	}
	if resp.Email != "ada@example.com" {
		t.Fatalf("unexpected email %s", resp.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	mux, _ := newTestMux()

	req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(`{"name":"Ada"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mux, f := newTestMux()
	f.users.createErr = domain.ErrDuplicate

	body := `{"name":"Ada","email":"taken@example.com","password_hash":"hash","age":30,"gender":"female"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestLoginUnknownCredentials(t *testing.T) {
	mux, _ := newTestMux()

	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`{"email":"ada@example.com","password_hash":"wrong"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestLoginIssuesToken(t *testing.T) {
	mux, f := newTestMux()
	f.users.stored = &domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: "hash"}

	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`{"email":"ada@example.com","password_hash":"hash"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UserID != "user-1" {
		t.Fatalf("unexpected user_id %s", resp.UserID)
	}

	claims, err := auth.Parse(resp.Token, auth.Config{Secret: "test-secret", Issuer: "test"})
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("unexpected subject %s", claims.Subject)
	}
}

func TestUpdateWorkoutEmptyPatch(t *testing.T) {
	mux, _ := newTestMux()

	req := httptest.NewRequest(http.MethodPut, "/v1/workouts/w-1", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "empty_update") {
		t.Fatalf("expected empty_update error, got %s", rr.Body.String())
	}
}

func TestFollowSelf(t *testing.T) {
	mux, _ := newTestMux()

	req := httptest.NewRequest(http.MethodPost, "/v1/social/follow", strings.NewReader(`{"follower_id":"u-1","following_id":"u-1"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "self_follow") {
		t.Fatalf("expected self_follow error, got %s", rr.Body.String())
	}
}

func TestFeedQueryParams(t *testing.T) {
	mux, f := newTestMux()

	req := httptest.NewRequest(http.MethodGet, "/v1/feed/u-1?limit=5&offset=10&include_viewed=true", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if f.social.lastQuery.Limit != 5 || f.social.lastQuery.Offset != 10 || !f.social.lastQuery.IncludeViewed {
		t.Fatalf("query params not forwarded: %+v", f.social.lastQuery)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/feed/u-1", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if f.social.lastQuery.Limit != domain.DefaultFeedLimit {
		t.Fatalf("expected default limit %d got %d", domain.DefaultFeedLimit, f.social.lastQuery.Limit)
	}
	if f.social.lastQuery.IncludeViewed {
		t.Fatal("include_viewed should default to false")
	}
}

func TestRankAbsentUser(t *testing.T) {
	mux, _ := newTestMux()

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard/u-1/rank", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRankPresentUser(t *testing.T) {
	mux, f := newTestMux()
	rank := 3
	f.leaderboard.rank = &rank

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard/u-1/rank", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]int
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["rank"] != 3 {
		t.Fatalf("expected rank 3 got %d", resp["rank"])
	}
}

func TestStandingsRejectsBadDate(t *testing.T) {
	mux, _ := newTestMux()

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard?start_date=March+1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestStandingsWindowForwarded(t *testing.T) {
	mux, f := newTestMux()

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard?limit=3&start_date=2025-01-01&end_date=2025-01-31", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if f.leaderboard.lastQuery.Limit != 3 {
		t.Fatalf("limit not forwarded: %+v", f.leaderboard.lastQuery)
	}
	if !f.leaderboard.lastQuery.Windowed() {
		t.Fatal("expected windowed query")
	}
	if got := f.leaderboard.lastQuery.StartDate.Format(dateLayout); got != "2025-01-01" {
		t.Fatalf("unexpected start date %s", got)
	}
}

type fakeUserRepo struct {
	stored    *domain.User
	createErr error
}

func (f *fakeUserRepo) Create(ctx context.Context, user domain.User) error {
	return f.createErr
}

func (f *fakeUserRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	return f.stored, nil
}

func (f *fakeUserRepo) GetByCredentials(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	if f.stored != nil && f.stored.Email == email && f.stored.PasswordHash == passwordHash {
		return f.stored, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) error {
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeUserRepo) SetProfilePictureKey(ctx context.Context, id string, key *string) error {
	return nil
}

type fakeBlobStore struct{}

func (f *fakeBlobStore) Upload(ctx context.Context, scope string, data []byte, contentType string) (string, error) {
	return "profile_pictures/" + scope + "/key", nil
}

func (f *fakeBlobStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://blobs.example/" + key, nil
}

func (f *fakeBlobStore) Fetch(ctx context.Context, key string) ([]byte, string, error) {
	return nil, "", nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	return nil
}

type fakeWorkoutRepo struct{}

func (f *fakeWorkoutRepo) Create(ctx context.Context, workout domain.Workout) error {
	return nil
}

func (f *fakeWorkoutRepo) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutSummary, error) {
	return nil, nil
}

func (f *fakeWorkoutRepo) Detail(ctx context.Context, id string) (*domain.WorkoutDetail, error) {
	return nil, nil
}

func (f *fakeWorkoutRepo) Update(ctx context.Context, id string, patch domain.WorkoutPatch) error {
	return nil
}

func (f *fakeWorkoutRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeWorkoutRepo) AddExercise(ctx context.Context, entry domain.ExerciseSet) error {
	return nil
}

func (f *fakeWorkoutRepo) UpdateExercise(ctx context.Context, id string, patch domain.ExercisePatch) error {
	return nil
}

func (f *fakeWorkoutRepo) DeleteExercise(ctx context.Context, id string) error {
	return nil
}

type fakeMeasurementRepo struct{}

func (f *fakeMeasurementRepo) Create(ctx context.Context, m domain.Measurement) error {
	return nil
}

func (f *fakeMeasurementRepo) ListByUser(ctx context.Context, userID string) ([]domain.Measurement, error) {
	return nil, nil
}

func (f *fakeMeasurementRepo) Update(ctx context.Context, id string, patch domain.MeasurementPatch) error {
	return nil
}

func (f *fakeMeasurementRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeSocialRepo struct {
	lastQuery domain.FeedQuery
}

func (f *fakeSocialRepo) Follow(ctx context.Context, followerID, followingID string) error {
	return nil
}

func (f *fakeSocialRepo) Unfollow(ctx context.Context, followerID, followingID string) error {
	return nil
}

func (f *fakeSocialRepo) Followers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	return nil, nil
}

func (f *fakeSocialRepo) Following(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	return nil, nil
}

func (f *fakeSocialRepo) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return false, nil
}

func (f *fakeSocialRepo) Feed(ctx context.Context, viewerID string, query domain.FeedQuery) ([]domain.FeedItem, error) {
	f.lastQuery = query
	return nil, nil
}

func (f *fakeSocialRepo) MarkViewed(ctx context.Context, workoutID, viewerID string) error {
	return nil
}

type fakeLeaderboardRepo struct {
	lastQuery domain.StandingsQuery
	rank      *int
}

func (f *fakeLeaderboardRepo) Refresh(ctx context.Context) error {
	return nil
}

func (f *fakeLeaderboardRepo) Standings(ctx context.Context, query domain.StandingsQuery) ([]domain.Standing, error) {
	f.lastQuery = query
	return nil, nil
}

func (f *fakeLeaderboardRepo) Rank(ctx context.Context, userID string) (*int, error) {
	return f.rank, nil
}
