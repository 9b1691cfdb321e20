package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"example.com/fittrack/internal/auth"
	"example.com/fittrack/internal/domain"
)

// RegisterRequest is the payload for POST /v1/users.
type RegisterRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"password_hash"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	FitnessLevel *string `json:"fitness_level,omitempty"`
}

// Validate ensures request correctness.
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(r.PasswordHash) == "" {
		return errors.New("password_hash is required")
	}
	if r.Age <= 0 {
		return errors.New("age must be > 0")
	}
	if strings.TrimSpace(r.Gender) == "" {
		return errors.New("gender is required")
	}
	return nil
}

// UserView exposes account details without the credential.
type UserView struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	FitnessLevel      *string   `json:"fitness_level,omitempty"`
	ProfilePictureKey *string   `json:"profile_picture_key,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toUserView(u domain.User) UserView {
	return UserView{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Age:               u.Age,
		Gender:            u.Gender,
		FitnessLevel:      u.FitnessLevel,
		ProfilePictureKey: u.ProfilePictureKey,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), domain.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		Age:          req.Age,
		Gender:       req.Gender,
		FitnessLevel: req.FitnessLevel,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserView(*user))
}

// LoginRequest is the payload for POST /v1/login.
type LoginRequest struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// LoginResponse returns the resolved account and a bearer token.
type LoginResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.PasswordHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
			return
		}
		writeDomainError(w, err)
		return
	}

	token, err := auth.Issue(user.ID, h.authConfig)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{UserID: user.ID, Token: token})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(*user))
}

// UpdateUserRequest carries the optional fields of a profile update.
type UpdateUserRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	FitnessLevel *string `json:"fitness_level,omitempty"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	err := h.users.UpdateProfile(r.Context(), r.PathValue("id"), domain.UserPatch{
		Name:         req.Name,
		Email:        req.Email,
		FitnessLevel: req.FitnessLevel,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// maxPictureBytes caps profile-picture uploads.
const maxPictureBytes = 5 << 20

func (h *Handler) uploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPictureBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPictureBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to read file")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := h.users.AttachProfilePicture(r.Context(), r.PathValue("id"), data, contentType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (h *Handler) profilePictureURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.users.ProfilePictureURL(r.Context(), r.PathValue("id"), h.pictureTTL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) deleteProfilePicture(w http.ResponseWriter, r *http.Request) {
	if err := h.users.RemoveProfilePicture(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile picture deleted"})
}
