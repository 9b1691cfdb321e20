package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/fittrack/internal/domain"
)

// StartWorkoutRequest is the payload for POST /v1/workouts.
type StartWorkoutRequest struct {
	UserID string  `json:"user_id"`
	Date   string  `json:"date"`
	Name   *string `json:"name,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// Validate ensures request correctness.
func (r StartWorkoutRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	return nil
}

// WorkoutView exposes a workout row.
type WorkoutView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Name      *string   `json:"name,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutSummaryView is a workout annotated with its aggregates.
type WorkoutSummaryView struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Date              string    `json:"date"`
	Name              *string   `json:"name,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	ExerciseCount     int       `json:"exercise_count"`
	TotalWeightLifted float64   `json:"total_weight_lifted"`
	CreatedAt         time.Time `json:"created_at"`
}

// ExerciseView exposes one exercise entry.
type ExerciseView struct {
	ID        string    `json:"id"`
	WorkoutID string    `json:"workout_id"`
	Name      string    `json:"name"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutDetailView bundles a workout with its entries.
type WorkoutDetailView struct {
	Workout   WorkoutView    `json:"workout"`
	Exercises []ExerciseView `json:"exercises"`
}

func toWorkoutView(workout domain.Workout) WorkoutView {
	return WorkoutView{
		ID:        workout.ID,
		UserID:    workout.UserID,
		Date:      workout.Date.Format(dateLayout),
		Name:      workout.Name,
		Notes:     workout.Notes,
		CreatedAt: workout.CreatedAt,
	}
}

func toExerciseView(entry domain.ExerciseSet) ExerciseView {
	return ExerciseView{
		ID:        entry.ID,
		WorkoutID: entry.WorkoutID,
		Name:      entry.Name,
		Sets:      entry.Sets,
		Reps:      entry.Reps,
		Weight:    entry.Weight,
		CreatedAt: entry.CreatedAt,
	}
}

func (h *Handler) startWorkout(w http.ResponseWriter, r *http.Request) {
	var req StartWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "date must be YYYY-MM-DD")
		return
	}

	workout, err := h.workouts.Start(r.Context(), domain.StartWorkoutInput{
		UserID: req.UserID,
		Date:   date,
		Name:   req.Name,
		Notes:  req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkoutView(*workout))
}

func (h *Handler) userWorkouts(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.workouts.UserWorkouts(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]WorkoutSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, WorkoutSummaryView{
			ID:                s.ID,
			UserID:            s.UserID,
			Date:              s.Date.Format(dateLayout),
			Name:              s.Name,
			Notes:             s.Notes,
			ExerciseCount:     s.ExerciseCount,
			TotalWeightLifted: s.TotalWeightLifted,
			CreatedAt:         s.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) workoutDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.workouts.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	view := WorkoutDetailView{
		Workout:   toWorkoutView(detail.Workout),
		Exercises: make([]ExerciseView, 0, len(detail.Exercises)),
	}
	for _, entry := range detail.Exercises {
		view.Exercises = append(view.Exercises, toExerciseView(entry))
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateWorkoutRequest carries the optional fields of a workout update.
type UpdateWorkoutRequest struct {
	Date  *string `json:"date,omitempty"`
	Name  *string `json:"name,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

func (h *Handler) updateWorkout(w http.ResponseWriter, r *http.Request) {
	var req UpdateWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	patch := domain.WorkoutPatch{Name: req.Name, Notes: req.Notes}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", "date must be YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	if err := h.workouts.Update(r.Context(), r.PathValue("id"), patch); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "workout updated"})
}

func (h *Handler) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := h.workouts.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "workout deleted"})
}

// AddExerciseRequest is the payload for POST /v1/workouts/{id}/exercises.
type AddExerciseRequest struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Validate ensures request correctness.
func (r AddExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Sets <= 0 {
		return errors.New("sets must be > 0")
	}
	if r.Reps <= 0 {
		return errors.New("reps must be > 0")
	}
	if r.Weight < 0 {
		return errors.New("weight must be >= 0")
	}
	return nil
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	var req AddExerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	entry, err := h.workouts.AddExercise(r.Context(), r.PathValue("id"), domain.ExerciseInput{
		Name:   req.Name,
		Sets:   req.Sets,
		Reps:   req.Reps,
		Weight: req.Weight,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExerciseView(*entry))
}

// UpdateExerciseRequest carries the optional fields of an entry update.
type UpdateExerciseRequest struct {
	Name   *string  `json:"name,omitempty"`
	Sets   *int     `json:"sets,omitempty"`
	Reps   *int     `json:"reps,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

func (h *Handler) updateExercise(w http.ResponseWriter, r *http.Request) {
	var req UpdateExerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	err := h.workouts.UpdateExercise(r.Context(), r.PathValue("id"), domain.ExercisePatch{
		Name:   req.Name,
		Sets:   req.Sets,
		Reps:   req.Reps,
		Weight: req.Weight,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "exercise updated"})
}

func (h *Handler) deleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := h.workouts.DeleteExercise(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "exercise deleted"})
}
