package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create saves a new user. The user's HashedPassword must already be
	// set; plaintext passwords are never persisted.
	// Returns ErrUsernameExists or ErrEmailExists on uniqueness violations.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ProfileStore defines the interface for user profile persistence.
type ProfileStore interface {
	// GetByUserID retrieves the profile owned by the given user.
	// Returns ErrProfileNotFound if no profile exists.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Upsert creates the user's profile or updates it in place. The
	// one-profile-per-user invariant is enforced by the unique constraint
	// on the owning user.
	Upsert(ctx context.Context, profile *domain.Profile) error
}
