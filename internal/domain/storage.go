package domain

import (
	"context"
	"time"
)

// BlobStore abstracts the object-storage collaborator holding profile pictures.
// Implementations return opaque keys; only keys are persisted in the database.
type BlobStore interface {
	Upload(ctx context.Context, scope string, data []byte, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Fetch(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}
