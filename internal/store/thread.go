package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// ThreadStore defines the interface for private conversation persistence.
//
// Thread reads are scoped to participants: a thread is only visible to its
// two users.
type ThreadStore interface {
	// Create saves a new thread.
	// Returns ErrThreadExists if a thread for the same (user1, user2)
	// pair already exists.
	Create(ctx context.Context, thread *domain.Thread) error

	// GetForUser retrieves a thread by ID, visible only to participants.
	// Returns ErrThreadNotFound otherwise.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Thread, error)

	// ListForUser returns all threads the given user participates in,
	// newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Thread, error)

	// CreateMessage saves a new message in a thread.
	// Returns ErrInvalidEntity if the referenced thread does not exist.
	CreateMessage(ctx context.Context, message *domain.Message) error

	// ListMessages returns a thread's messages in timestamp-ascending
	// order with sender usernames projected onto the results.
	ListMessages(ctx context.Context, threadID uuid.UUID) ([]*domain.Message, error)
}
