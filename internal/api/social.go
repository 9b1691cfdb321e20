package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/fittrack/internal/domain"
)

// FollowRequest is the payload for follow/unfollow/is-following.
type FollowRequest struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

// Validate ensures request correctness.
func (r FollowRequest) Validate() error {
	if strings.TrimSpace(r.FollowerID) == "" {
		return errors.New("follower_id is required")
	}
	if strings.TrimSpace(r.FollowingID) == "" {
		return errors.New("following_id is required")
	}
	return nil
}

// UserSummaryView exposes a follower/following listing entry.
type UserSummaryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	var req FollowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	if err := h.social.Follow(r.Context(), req.FollowerID, req.FollowingID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "followed user"})
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	var req FollowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	if err := h.social.Unfollow(r.Context(), req.FollowerID, req.FollowingID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "unfollowed user"})
}

func (h *Handler) followers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.social.Followers(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryViews(summaries))
}

func (h *Handler) following(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.social.Following(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryViews(summaries))
}

func toSummaryViews(summaries []domain.UserSummary) []UserSummaryView {
	views := make([]UserSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, UserSummaryView{ID: s.ID, Name: s.Name, Email: s.Email})
	}
	return views
}

func (h *Handler) isFollowing(w http.ResponseWriter, r *http.Request) {
	var req FollowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	following, err := h.social.IsFollowing(r.Context(), req.FollowerID, req.FollowingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_following": following})
}

// FeedItemView is one entry in the workout feed.
type FeedItemView struct {
	WorkoutID     string    `json:"workout_id"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	Date          string    `json:"date"`
	Name          *string   `json:"name,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	ExerciseCount int       `json:"exercise_count"`
	TotalVolume   float64   `json:"total_volume"`
	LoggedAt      time.Time `json:"logged_at"`
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	query := domain.FeedQuery{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			query.Limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			query.Offset = parsed
		}
	}
	if raw := r.URL.Query().Get("include_viewed"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			query.IncludeViewed = parsed
		}
	}

	items, err := h.social.Feed(r.Context(), r.PathValue("id"), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]FeedItemView, 0, len(items))
	for _, item := range items {
		views = append(views, FeedItemView{
			WorkoutID:     item.WorkoutID,
			AuthorID:      item.AuthorID,
			AuthorName:    item.AuthorName,
			Date:          item.Date.Format(dateLayout),
			Name:          item.Name,
			Notes:         item.Notes,
			ExerciseCount: item.ExerciseCount,
			TotalVolume:   item.TotalVolume,
			LoggedAt:      item.LoggedAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// MarkViewedRequest is the payload for POST /v1/feed/viewed.
type MarkViewedRequest struct {
	WorkoutID string `json:"workout_id"`
	ViewerID  string `json:"viewer_id"`
}

func (h *Handler) markViewed(w http.ResponseWriter, r *http.Request) {
	var req MarkViewedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.WorkoutID) == "" || strings.TrimSpace(req.ViewerID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "workout_id and viewer_id are required")
		return
	}

	if err := h.social.MarkViewed(r.Context(), req.WorkoutID, req.ViewerID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "marked as viewed"})
}
