package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// PostStore implements store.PostStore using a PostgreSQL backend.
//
// Reads join the users table to project the author's username, and embed the
// post's comments in timestamp-ascending order.
type PostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostStore creates a PostgreSQL implementation of store.PostStore.
func NewPostStore(db store.DBTX, log *slog.Logger) *PostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostStore{
		db:     db,
		logger: log.With(slog.String("component", "post_store")),
	}
}

var _ store.PostStore = (*PostStore)(nil)

const postSelect = `
	SELECT p.id, p.author_id, u.username, p.title, p.body, p.is_published, p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// Create implements store.PostStore.Create.
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	query := `
		INSERT INTO posts (id, author_id, title, body, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Body,
		post.IsPublished,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return MapError(err)
	}

	log.Info("post created", slog.String("post_id", post.ID.String()))
	return nil
}

// GetPublished implements store.PostStore.GetPublished.
func (s *PostStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := postSelect + ` WHERE p.id = $1 AND p.is_published = TRUE`
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		return nil, MapError(err)
	}

	post.Comments, err = listCommentsByPost(ctx, s.db, post.ID)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// ListPublished implements store.PostStore.ListPublished.
func (s *PostStore) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	query := postSelect + ` WHERE p.is_published = TRUE ORDER BY p.created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, MapError(err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, post := range posts {
		post.Comments, err = listCommentsByPost(ctx, s.db, post.ID)
		if err != nil {
			return nil, err
		}
	}

	return posts, nil
}

// Update implements store.PostStore.Update.
func (s *PostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET title = $2, body = $3, is_published = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.Title,
		post.Body,
		post.IsPublished,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrPostNotFound)
}

// Delete implements store.PostStore.Delete. Comments are removed by cascade.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrPostNotFound)
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorUsername,
		&post.Title,
		&post.Body,
		&post.IsPublished,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
