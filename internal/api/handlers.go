// Package api exposes HTTP handlers for the tracker service.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"example.com/fittrack/internal/auth"
	"example.com/fittrack/internal/domain"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	users        *domain.UserService
	workouts     *domain.WorkoutService
	measurements *domain.MeasurementService
	social       *domain.SocialService
	leaderboard  *domain.LeaderboardService
	authConfig   auth.Config
	pictureTTL   time.Duration
}

// HandlerConfig bundles the collaborators a Handler needs.
type HandlerConfig struct {
	Users        *domain.UserService
	Workouts     *domain.WorkoutService
	Measurements *domain.MeasurementService
	Social       *domain.SocialService
	Leaderboard  *domain.LeaderboardService
	AuthConfig   auth.Config
	PictureTTL   time.Duration
}

// NewHandler builds a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		users:        cfg.Users,
		workouts:     cfg.Workouts,
		measurements: cfg.Measurements,
		social:       cfg.Social,
		leaderboard:  cfg.Leaderboard,
		authConfig:   cfg.AuthConfig,
		pictureTTL:   cfg.PictureTTL,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/users", h.register)
	mux.HandleFunc("POST /v1/login", h.login)
	mux.HandleFunc("GET /v1/users/{id}", h.profile)
	mux.HandleFunc("PUT /v1/users/{id}", h.updateProfile)
	mux.HandleFunc("DELETE /v1/users/{id}", h.deleteUser)
	mux.HandleFunc("POST /v1/users/{id}/profile-picture", h.uploadProfilePicture)
	mux.HandleFunc("GET /v1/users/{id}/profile-picture", h.profilePictureURL)
	mux.HandleFunc("DELETE /v1/users/{id}/profile-picture", h.deleteProfilePicture)

	mux.HandleFunc("POST /v1/workouts", h.startWorkout)
	mux.HandleFunc("GET /v1/users/{id}/workouts", h.userWorkouts)
	mux.HandleFunc("GET /v1/workouts/{id}", h.workoutDetail)
	mux.HandleFunc("PUT /v1/workouts/{id}", h.updateWorkout)
	mux.HandleFunc("DELETE /v1/workouts/{id}", h.deleteWorkout)
	mux.HandleFunc("POST /v1/workouts/{id}/exercises", h.addExercise)
	mux.HandleFunc("PUT /v1/exercises/{id}", h.updateExercise)
	mux.HandleFunc("DELETE /v1/exercises/{id}", h.deleteExercise)

	mux.HandleFunc("POST /v1/measurements", h.addMeasurement)
	mux.HandleFunc("GET /v1/users/{id}/measurements", h.userMeasurements)
	mux.HandleFunc("PUT /v1/measurements/{id}", h.updateMeasurement)
	mux.HandleFunc("DELETE /v1/measurements/{id}", h.deleteMeasurement)

	mux.HandleFunc("POST /v1/social/follow", h.follow)
	mux.HandleFunc("POST /v1/social/unfollow", h.unfollow)
	mux.HandleFunc("GET /v1/users/{id}/followers", h.followers)
	mux.HandleFunc("GET /v1/users/{id}/following", h.following)
	mux.HandleFunc("POST /v1/social/is-following", h.isFollowing)

	mux.HandleFunc("GET /v1/feed/{id}", h.feed)
	mux.HandleFunc("POST /v1/feed/viewed", h.markViewed)

	mux.HandleFunc("GET /v1/leaderboard", h.standings)
	mux.HandleFunc("GET /v1/leaderboard/{id}/rank", h.rank)
	mux.HandleFunc("POST /v1/leaderboard/refresh", h.refreshLeaderboard)

	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

// writeDomainError maps the error taxonomy to HTTP statuses. Store failures
// are logged here, at the boundary, and reported without driver detail.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusConflict, "duplicate", err.Error())
	case errors.Is(err, domain.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "invalid_reference", err.Error())
	case errors.Is(err, domain.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, "invalid_value", err.Error())
	case errors.Is(err, domain.ErrEmptyPatch):
		writeError(w, http.StatusBadRequest, "empty_update", err.Error())
	case errors.Is(err, domain.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "self_follow", err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
