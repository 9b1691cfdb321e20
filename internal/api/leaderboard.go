package api

import (
	"net/http"
	"strconv"

	"example.com/fittrack/internal/domain"
)

// StandingView is one leaderboard row.
type StandingView struct {
	UserID            string  `json:"user_id"`
	Name              string  `json:"name"`
	TotalWeightLifted float64 `json:"total_weight_lifted"`
	WorkoutDaysCount  int     `json:"workout_days_count"`
	LastWorkoutDate   *string `json:"last_workout_date,omitempty"`
}

func (h *Handler) standings(w http.ResponseWriter, r *http.Request) {
	query := domain.StandingsQuery{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			query.Limit = parsed
		}
	}
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", "start_date must be YYYY-MM-DD")
			return
		}
		query.StartDate = &parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", "end_date must be YYYY-MM-DD")
			return
		}
		query.EndDate = &parsed
	}

	standings, err := h.leaderboard.Standings(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]StandingView, 0, len(standings))
	for _, s := range standings {
		view := StandingView{
			UserID:            s.UserID,
			Name:              s.Name,
			TotalWeightLifted: s.TotalWeightLifted,
			WorkoutDaysCount:  s.WorkoutDaysCount,
		}
		if s.LastWorkoutDate != nil {
			formatted := s.LastWorkoutDate.Format(dateLayout)
			view.LastWorkoutDate = &formatted
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) rank(w http.ResponseWriter, r *http.Request) {
	rank, err := h.leaderboard.Rank(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rank == nil {
		writeError(w, http.StatusNotFound, "not_found", "user not on leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rank": *rank})
}

func (h *Handler) refreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	if err := h.leaderboard.Refresh(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "leaderboard updated"})
}
