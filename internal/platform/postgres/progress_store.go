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

// ProgressStore implements store.ProgressStore using a PostgreSQL backend.
//
// Every query carries the owning user in its WHERE clause, so one user's
// records are never reachable through another user's requests.
type ProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProgressStore creates a PostgreSQL implementation of store.ProgressStore.
func NewProgressStore(db store.DBTX, log *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ProgressStore{
		db:     db,
		logger: log.With(slog.String("component", "progress_store")),
	}
}

var _ store.ProgressStore = (*ProgressStore)(nil)

// Create implements store.ProgressStore.Create.
func (s *ProgressStore) Create(ctx context.Context, progress *domain.LessonProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()))
		return err
	}

	query := `
		INSERT INTO lesson_progress (id, user_id, lesson_id, completed, score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.LessonID,
		progress.Completed,
		progress.Score,
		progress.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err, "lesson_progress_user_lesson_key") {
			return store.ErrProgressExists
		}
		log.Error("failed to create progress record",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("lesson_id", progress.LessonID.String()))
		return MapError(err)
	}

	return nil
}

// GetForUser implements store.ProgressStore.GetForUser.
func (s *ProgressStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.LessonProgress, error) {
	query := `
		SELECT id, user_id, lesson_id, completed, score, updated_at
		FROM lesson_progress
		WHERE id = $1 AND user_id = $2
	`
	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		return nil, MapError(err)
	}
	return progress, nil
}

// ListForUser implements store.ProgressStore.ListForUser.
func (s *ProgressStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.LessonProgress, error) {
	query := `
		SELECT id, user_id, lesson_id, completed, score, updated_at
		FROM lesson_progress
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.LessonProgress{}
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, MapError(err)
		}
		records = append(records, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return records, nil
}

// UpdateForUser implements store.ProgressStore.UpdateForUser.
func (s *ProgressStore) UpdateForUser(ctx context.Context, progress *domain.LessonProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Only the completion flag and score are writable here, so the lesson
	// reference is not required on the incoming record.
	if progress.ID == uuid.Nil {
		return domain.ErrEmptyProgressID
	}
	if progress.UserID == uuid.Nil {
		return domain.ErrEmptyProgressUser
	}
	if progress.Score < 0 {
		return domain.ErrNegativeScore
	}

	query := `
		UPDATE lesson_progress
		SET completed = $3, score = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.Completed,
		progress.Score,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to update progress record",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrProgressNotFound)
}

// DeleteForUser implements store.ProgressStore.DeleteForUser.
func (s *ProgressStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM lesson_progress WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrProgressNotFound)
}

func scanProgress(row rowScanner) (*domain.LessonProgress, error) {
	var progress domain.LessonProgress
	err := row.Scan(
		&progress.ID,
		&progress.UserID,
		&progress.LessonID,
		&progress.Completed,
		&progress.Score,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
