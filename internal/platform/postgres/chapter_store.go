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

// ChapterStore implements store.ChapterStore using a PostgreSQL backend.
//
// Reads only ever see published chapters; the filter sits in the queries
// themselves, so unpublished content is invisible to every role.
type ChapterStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewChapterStore creates a PostgreSQL implementation of store.ChapterStore.
func NewChapterStore(db store.DBTX, log *slog.Logger) *ChapterStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ChapterStore{
		db:     db,
		logger: log.With(slog.String("component", "chapter_store")),
	}
}

var _ store.ChapterStore = (*ChapterStore)(nil)

// Create implements store.ChapterStore.Create.
func (s *ChapterStore) Create(ctx context.Context, chapter *domain.Chapter) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := chapter.Validate(); err != nil {
		log.Warn("chapter validation failed during create",
			slog.String("error", err.Error()),
			slog.String("chapter_id", chapter.ID.String()))
		return err
	}

	query := `
		INSERT INTO chapters (id, title, description, "order", is_published, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		chapter.ID,
		chapter.Title,
		chapter.Description,
		chapter.Order,
		chapter.IsPublished,
		chapter.CreatedBy,
		chapter.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create chapter",
			slog.String("error", err.Error()),
			slog.String("chapter_id", chapter.ID.String()))
		return MapError(err)
	}

	log.Info("chapter created", slog.String("chapter_id", chapter.ID.String()))
	return nil
}

// GetPublished implements store.ChapterStore.GetPublished.
func (s *ChapterStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Chapter, error) {
	query := `
		SELECT id, title, description, "order", is_published, created_by, created_at
		FROM chapters
		WHERE id = $1 AND is_published = TRUE
	`
	chapter, err := scanChapter(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrChapterNotFound
		}
		return nil, MapError(err)
	}

	chapter.Lessons, err = listPublishedLessonsByChapter(ctx, s.db, chapter.ID)
	if err != nil {
		return nil, err
	}

	return chapter, nil
}

// ListPublished implements store.ChapterStore.ListPublished.
func (s *ChapterStore) ListPublished(ctx context.Context) ([]*domain.Chapter, error) {
	query := `
		SELECT id, title, description, "order", is_published, created_by, created_at
		FROM chapters
		WHERE is_published = TRUE
		ORDER BY "order", created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	chapters := []*domain.Chapter{}
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, MapError(err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, chapter := range chapters {
		chapter.Lessons, err = listPublishedLessonsByChapter(ctx, s.db, chapter.ID)
		if err != nil {
			return nil, err
		}
	}

	return chapters, nil
}

// Update implements store.ChapterStore.Update.
func (s *ChapterStore) Update(ctx context.Context, chapter *domain.Chapter) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := chapter.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE chapters
		SET title = $2, description = $3, "order" = $4, is_published = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		chapter.ID,
		chapter.Title,
		chapter.Description,
		chapter.Order,
		chapter.IsPublished,
	)
	if err != nil {
		log.Error("failed to update chapter",
			slog.String("error", err.Error()),
			slog.String("chapter_id", chapter.ID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrChapterNotFound)
}

// Delete implements store.ChapterStore.Delete. Lessons, flashcards and
// quizzes under the chapter are removed by cascade.
func (s *ChapterStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete chapter",
			slog.String("error", err.Error()),
			slog.String("chapter_id", id.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrChapterNotFound)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChapter(row rowScanner) (*domain.Chapter, error) {
	var chapter domain.Chapter
	var createdBy uuid.NullUUID
	err := row.Scan(
		&chapter.ID,
		&chapter.Title,
		&chapter.Description,
		&chapter.Order,
		&chapter.IsPublished,
		&createdBy,
		&chapter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		chapter.CreatedBy = &createdBy.UUID
	}
	return &chapter, nil
}
