package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// PostStore defines the interface for social post persistence.
//
// Like chapters, the published filter is applied at the collection-source
// level for reads.
type PostStore interface {
	// Create saves a new post.
	Create(ctx context.Context, post *domain.Post) error

	// GetPublished retrieves a published post by ID with its comments
	// embedded in timestamp-ascending order and the author's username
	// projected onto the result.
	// Returns ErrPostNotFound if the post does not exist or is unpublished.
	GetPublished(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// ListPublished returns all published posts, newest first, with
	// comments and author usernames embedded.
	ListPublished(ctx context.Context) ([]*domain.Post, error)

	// Update modifies an existing post's writable fields and stamps
	// updated_at.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post and, by cascade, its comments.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentStore defines the interface for comment persistence.
type CommentStore interface {
	// Create saves a new comment.
	// Returns ErrInvalidEntity if the referenced post does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by ID with the commenter's username
	// projected onto the result.
	// Returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// List returns all comments in timestamp-ascending order.
	List(ctx context.Context) ([]*domain.Comment, error)

	// Update modifies an existing comment's body.
	// Returns ErrCommentNotFound if the comment does not exist.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes a comment.
	// Returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
