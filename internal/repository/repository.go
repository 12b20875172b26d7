package repository

import (
	"asura/tracker/internal/domain" // Import our defined domain models
	"context"                       // Standard for request-scoped deadlines, cancellation signals, etc.
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrAlreadyExists = RepositoryError("already exists")
	ErrUpdateFailed  = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create stores the user and returns its new ID. A taken email yields ErrAlreadyExists.
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// StateRepository stores one serialized activity document per user.
type StateRepository interface {
	// Get returns the stored JSON document or ErrNotFound.
	Get(ctx context.Context, userID string) ([]byte, error)
	// Put replaces the stored document unconditionally.
	Put(ctx context.Context, userID string, data []byte) error
	// Seed stores data only if the user has no document yet.
	Seed(ctx context.Context, userID string, data []byte) error
}

// KeyValueRepository is the local durable store used by the client.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error) // ErrNotFound when missing
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}
