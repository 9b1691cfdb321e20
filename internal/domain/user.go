// Package domain defines the business logic for the fitness tracker.
package domain

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// User is the canonical account record stored in PostgreSQL.
type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Age               int
	Gender            string
	FitnessLevel      *string
	ProfilePictureKey *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserPatch carries the fields of a partial profile update. Nil means "leave unchanged".
type UserPatch struct {
	Name         *string
	Email        *string
	FitnessLevel *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.FitnessLevel == nil
}

// UserRepository captures persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByCredentials(ctx context.Context, email, passwordHash string) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) error
	Delete(ctx context.Context, id string) error
	SetProfilePictureKey(ctx context.Context, id string, key *string) error
}

// RegisterInput captures the payload for account creation.
type RegisterInput struct {
	Name              string
	Email             string
	PasswordHash      string
	Age               int
	Gender            string
	FitnessLevel      *string
	ProfilePictureKey *string
}

// UserService orchestrates account workflows.
type UserService struct {
	repo  UserRepository
	blobs BlobStore
}

// NewUserService constructs a UserService.
func NewUserService(repo UserRepository, blobs BlobStore) *UserService {
	return &UserService{repo: repo, blobs: blobs}
}

// Register creates an account. A taken email surfaces as ErrDuplicate.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	now := time.Now().UTC()
	user := User{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Email:             input.Email,
		PasswordHash:      input.PasswordHash,
		Age:               input.Age,
		Gender:            input.Gender,
		FitnessLevel:      input.FitnessLevel,
		ProfilePictureKey: input.ProfilePictureKey,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login resolves an email/credential pair to the account it belongs to.
func (s *UserService) Login(ctx context.Context, email, passwordHash string) (*User, error) {
	user, err := s.repo.GetByCredentials(ctx, email, passwordHash)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Profile fetches an account by ID.
func (s *UserService) Profile(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial update. Empty patches are rejected before
// the store is touched.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch UserPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the account. Child rows cascade in the store.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AttachProfilePicture uploads image bytes to the blob store and persists the
// returned key on the account.
func (s *UserService) AttachProfilePicture(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	key, err := s.blobs.Upload(ctx, userID, data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetProfilePictureKey(ctx, userID, &key); err != nil {
		return "", err
	}
	return key, nil
}

// ProfilePictureURL returns a presigned, TTL-bounded URL for the stored picture.
func (s *UserService) ProfilePictureURL(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.ProfilePictureKey == nil {
		return "", ErrNotFound
	}
	return s.blobs.PresignedURL(ctx, *user.ProfilePictureKey, ttl)
}

// RemoveProfilePicture clears the stored key and deletes the blob. The blob
// delete is best-effort: the database is the source of truth for the key.
func (s *UserService) RemoveProfilePicture(ctx context.Context, userID string) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if user.ProfilePictureKey == nil {
		return ErrNotFound
	}
	key := *user.ProfilePictureKey
	if err := s.repo.SetProfilePictureKey(ctx, userID, nil); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		log.Printf("profile picture blob %s not deleted: %v", key, err)
	}
	return nil
}
