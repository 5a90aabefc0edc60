package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// CommentStore implements store.CommentStore using a PostgreSQL backend.
type CommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCommentStore creates a PostgreSQL implementation of store.CommentStore.
func NewCommentStore(db store.DBTX, log *slog.Logger) *CommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CommentStore{
		db:     db,
		logger: log.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*CommentStore)(nil)

const commentSelect = `
	SELECT c.id, c.post_id, c.commenter_id, u.username, c.body, c.timestamp
	FROM comments c
	JOIN users u ON u.id = c.commenter_id`

// Create implements store.CommentStore.Create.
func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("comment_id", comment.ID.String()))
		return err
	}

	query := `
		INSERT INTO comments (id, post_id, commenter_id, body, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		comment.ID,
		comment.PostID,
		comment.CommenterID,
		comment.Body,
		comment.Timestamp,
	)
	if err != nil {
		log.Error("failed to create comment",
			slog.String("error", err.Error()),
			slog.String("post_id", comment.PostID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.CommentStore.GetByID.
func (s *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`
	comment, err := scanComment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCommentNotFound
		}
		return nil, MapError(err)
	}
	return comment, nil
}

// List implements store.CommentStore.List.
func (s *CommentStore) List(ctx context.Context) ([]*domain.Comment, error) {
	query := commentSelect + ` ORDER BY c.timestamp`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectComments(rows)
}

// Update implements store.CommentStore.Update. Only the body is writable,
// so only the fields the statement touches are validated.
func (s *CommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == uuid.Nil {
		return domain.ErrEmptyCommentID
	}
	if comment.Body == "" {
		return domain.ErrEmptyCommentBody
	}

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE comments SET body = $2 WHERE id = $1`,
		comment.ID,
		comment.Body,
	)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrCommentNotFound)
}

// Delete implements store.CommentStore.Delete.
func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrCommentNotFound)
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.CommenterID,
		&comment.CommenterUsername,
		&comment.Body,
		&comment.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func collectComments(rows *sql.Rows) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, MapError(err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return comments, nil
}

// listCommentsByPost loads a post's comments in timestamp-ascending order.
// Shared with PostStore for nested reads.
func listCommentsByPost(ctx context.Context, db store.DBTX, postID uuid.UUID) ([]*domain.Comment, error) {
	query := commentSelect + ` WHERE c.post_id = $1 ORDER BY c.timestamp`
	rows, err := db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectComments(rows)
}
