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

// MatchingStore implements store.MatchingStore using a PostgreSQL backend.
type MatchingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewMatchingStore creates a PostgreSQL implementation of
// store.MatchingStore.
func NewMatchingStore(db store.DBTX, log *slog.Logger) *MatchingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &MatchingStore{
		db:     db,
		logger: log.With(slog.String("component", "matching_store")),
	}
}

var _ store.MatchingStore = (*MatchingStore)(nil)

// Create implements store.MatchingStore.Create.
func (s *MatchingStore) Create(ctx context.Context, exercise *domain.MatchingExercise) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exercise.Validate(); err != nil {
		log.Warn("exercise validation failed during create",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return err
	}

	query := `
		INSERT INTO matching_exercises (id, title, instructions, exercise_type, is_active)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		exercise.ID,
		exercise.Title,
		exercise.Instructions,
		string(exercise.ExerciseType),
		exercise.IsActive,
	)
	if err != nil {
		log.Error("failed to create exercise",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return MapError(err)
	}

	for _, pair := range exercise.Pairs {
		pair.ExerciseID = exercise.ID
		if err := pair.Validate(); err != nil {
			return err
		}
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO matching_pairs (id, exercise_id, hanzi, pinyin, english) VALUES ($1, $2, $3, $4, $5)`,
			pair.ID, pair.ExerciseID, pair.Hanzi, pair.Pinyin, pair.English,
		)
		if err != nil {
			return MapError(err)
		}
	}

	return nil
}

// GetByID implements store.MatchingStore.GetByID.
func (s *MatchingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchingExercise, error) {
	query := exerciseSelect + ` WHERE id = $1`
	exercise, err := scanExercise(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrExerciseNotFound
		}
		return nil, MapError(err)
	}

	exercise.Pairs, err = s.listPairs(ctx, exercise.ID)
	if err != nil {
		return nil, err
	}

	return exercise, nil
}

// ListActive implements store.MatchingStore.ListActive.
func (s *MatchingStore) ListActive(ctx context.Context) ([]*domain.MatchingExercise, error) {
	query := exerciseSelect + ` WHERE is_active = TRUE ORDER BY title`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	exercises := []*domain.MatchingExercise{}
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, MapError(err)
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, exercise := range exercises {
		exercise.Pairs, err = s.listPairs(ctx, exercise.ID)
		if err != nil {
			return nil, err
		}
	}

	return exercises, nil
}

// Update implements store.MatchingStore.Update.
func (s *MatchingStore) Update(ctx context.Context, exercise *domain.MatchingExercise) error {
	if err := exercise.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE matching_exercises
		SET title = $2, instructions = $3, exercise_type = $4, is_active = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		exercise.ID,
		exercise.Title,
		exercise.Instructions,
		string(exercise.ExerciseType),
		exercise.IsActive,
	)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrExerciseNotFound)
}

// Delete implements store.MatchingStore.Delete. Pairs are removed by
// cascade.
func (s *MatchingStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM matching_exercises WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrExerciseNotFound)
}

func (s *MatchingStore) listPairs(ctx context.Context, exerciseID uuid.UUID) ([]*domain.MatchingPair, error) {
	query := `
		SELECT id, exercise_id, hanzi, pinyin, english
		FROM matching_pairs
		WHERE exercise_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, exerciseID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	pairs := []*domain.MatchingPair{}
	for rows.Next() {
		var pair domain.MatchingPair
		if err := rows.Scan(&pair.ID, &pair.ExerciseID, &pair.Hanzi, &pair.Pinyin, &pair.English); err != nil {
			return nil, MapError(err)
		}
		pairs = append(pairs, &pair)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return pairs, nil
}

const exerciseSelect = `
	SELECT id, title, instructions, exercise_type, is_active
	FROM matching_exercises`

func scanExercise(row rowScanner) (*domain.MatchingExercise, error) {
	var exercise domain.MatchingExercise
	var et string
	err := row.Scan(&exercise.ID, &exercise.Title, &exercise.Instructions, &et, &exercise.IsActive)
	if err != nil {
		return nil, err
	}
	exercise.ExerciseType = domain.ExerciseType(et)
	return &exercise, nil
}
