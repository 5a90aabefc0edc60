package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// ProgressStore defines the interface for lesson progress persistence.
//
// Every read is scoped to an owning user: a record is only visible to the
// user it belongs to. Uniqueness of the (user, lesson) pair is a storage
// constraint, not a soft check.
type ProgressStore interface {
	// Create saves a new progress record.
	// Returns ErrProgressExists if a record for the (user, lesson) pair
	// already exists.
	// Returns ErrInvalidEntity if the referenced lesson does not exist.
	Create(ctx context.Context, progress *domain.LessonProgress) error

	// GetForUser retrieves a progress record by ID, visible only when
	// owned by the given user.
	// Returns ErrProgressNotFound otherwise.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.LessonProgress, error)

	// ListForUser returns all progress records owned by the given user.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.LessonProgress, error)

	// UpdateForUser modifies the completed flag and score of a record
	// owned by the given user and stamps updated_at server-side.
	// Returns ErrProgressNotFound if no owned record matches.
	UpdateForUser(ctx context.Context, progress *domain.LessonProgress) error

	// DeleteForUser removes a record owned by the given user.
	// Returns ErrProgressNotFound if no owned record matches.
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error
}
