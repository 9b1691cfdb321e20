package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/fittrack/internal/domain"
)

// AddMeasurementRequest is the payload for POST /v1/measurements.
type AddMeasurementRequest struct {
	UserID            string   `json:"user_id"`
	Weight            float64  `json:"weight"`
	BMI               *float64 `json:"bmi,omitempty"`
	BodyFatPercentage *float64 `json:"body_fat_percentage,omitempty"`
	MuscleMass        *float64 `json:"muscle_mass,omitempty"`
	Date              string   `json:"date"`
}

// Validate ensures request correctness.
func (r AddMeasurementRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if r.Weight <= 0 {
		return errors.New("weight must be > 0")
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	return nil
}

// MeasurementView exposes one measurement row.
type MeasurementView struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Weight            float64   `json:"weight"`
	BMI               *float64  `json:"bmi,omitempty"`
	BodyFatPercentage *float64  `json:"body_fat_percentage,omitempty"`
	MuscleMass        *float64  `json:"muscle_mass,omitempty"`
	RecordedOn        string    `json:"recorded_on"`
	CreatedAt         time.Time `json:"created_at"`
}

func toMeasurementView(m domain.Measurement) MeasurementView {
	return MeasurementView{
		ID:                m.ID,
		UserID:            m.UserID,
		Weight:            m.Weight,
		BMI:               m.BMI,
		BodyFatPercentage: m.BodyFatPercentage,
		MuscleMass:        m.MuscleMass,
		RecordedOn:        m.RecordedOn.Format(dateLayout),
		CreatedAt:         m.CreatedAt,
	}
}

func (h *Handler) addMeasurement(w http.ResponseWriter, r *http.Request) {
	var req AddMeasurementRequest
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

	m, err := h.measurements.Add(r.Context(), domain.MeasurementInput{
		UserID:            req.UserID,
		Weight:            req.Weight,
		BMI:               req.BMI,
		BodyFatPercentage: req.BodyFatPercentage,
		MuscleMass:        req.MuscleMass,
		RecordedOn:        date,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMeasurementView(*m))
}

func (h *Handler) userMeasurements(w http.ResponseWriter, r *http.Request) {
	measurements, err := h.measurements.List(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]MeasurementView, 0, len(measurements))
	for _, m := range measurements {
		views = append(views, toMeasurementView(m))
	}
	writeJSON(w, http.StatusOK, views)
}

// UpdateMeasurementRequest carries the optional fields of a measurement update.
type UpdateMeasurementRequest struct {
	Weight            *float64 `json:"weight,omitempty"`
	BMI               *float64 `json:"bmi,omitempty"`
	BodyFatPercentage *float64 `json:"body_fat_percentage,omitempty"`
	MuscleMass        *float64 `json:"muscle_mass,omitempty"`
}

func (h *Handler) updateMeasurement(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeasurementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	err := h.measurements.Update(r.Context(), r.PathValue("id"), domain.MeasurementPatch{
		Weight:            req.Weight,
		BMI:               req.BMI,
		BodyFatPercentage: req.BodyFatPercentage,
		MuscleMass:        req.MuscleMass,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "measurement updated"})
}

func (h *Handler) deleteMeasurement(w http.ResponseWriter, r *http.Request) {
	if err := h.measurements.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "measurement deleted"})
}
