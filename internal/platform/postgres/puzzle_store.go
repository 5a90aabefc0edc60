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

// PuzzleStore implements store.PuzzleStore using a PostgreSQL backend.
type PuzzleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPuzzleStore creates a PostgreSQL implementation of store.PuzzleStore.
func NewPuzzleStore(db store.DBTX, log *slog.Logger) *PuzzleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PuzzleStore{
		db:     db,
		logger: log.With(slog.String("component", "puzzle_store")),
	}
}

var _ store.PuzzleStore = (*PuzzleStore)(nil)

// Create implements store.PuzzleStore.Create.
func (s *PuzzleStore) Create(ctx context.Context, puzzle *domain.SentencePuzzle) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := puzzle.Validate(); err != nil {
		log.Warn("puzzle validation failed during create",
			slog.String("error", err.Error()),
			slog.String("puzzle_id", puzzle.ID.String()))
		return err
	}

	query := `
		INSERT INTO sentence_puzzles (id, title, instruction, correct_sentence, pinyin, translation, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		puzzle.ID,
		puzzle.Title,
		puzzle.Instruction,
		puzzle.CorrectSentence,
		puzzle.Pinyin,
		puzzle.Translation,
		puzzle.IsActive,
	)
	if err != nil {
		log.Error("failed to create puzzle",
			slog.String("error", err.Error()),
			slog.String("puzzle_id", puzzle.ID.String()))
		return MapError(err)
	}

	for _, tile := range puzzle.Tiles {
		tile.PuzzleID = puzzle.ID
		if err := tile.Validate(); err != nil {
			return err
		}
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO word_tiles (id, puzzle_id, hanzi, "order") VALUES ($1, $2, $3, $4)`,
			tile.ID, tile.PuzzleID, tile.Hanzi, tile.Order,
		)
		if err != nil {
			return MapError(err)
		}
	}

	return nil
}

// GetByID implements store.PuzzleStore.GetByID.
func (s *PuzzleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SentencePuzzle, error) {
	query := puzzleSelect + ` WHERE id = $1`
	puzzle, err := scanPuzzle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPuzzleNotFound
		}
		return nil, MapError(err)
	}

	puzzle.Tiles, err = s.listTiles(ctx, puzzle.ID)
	if err != nil {
		return nil, err
	}

	return puzzle, nil
}

// ListActive implements store.PuzzleStore.ListActive.
func (s *PuzzleStore) ListActive(ctx context.Context) ([]*domain.SentencePuzzle, error) {
	query := puzzleSelect + ` WHERE is_active = TRUE ORDER BY title`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	puzzles := []*domain.SentencePuzzle{}
	for rows.Next() {
		puzzle, err := scanPuzzle(rows)
		if err != nil {
			return nil, MapError(err)
		}
		puzzles = append(puzzles, puzzle)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, puzzle := range puzzles {
		puzzle.Tiles, err = s.listTiles(ctx, puzzle.ID)
		if err != nil {
			return nil, err
		}
	}

	return puzzles, nil
}

// Update implements store.PuzzleStore.Update.
func (s *PuzzleStore) Update(ctx context.Context, puzzle *domain.SentencePuzzle) error {
	if err := puzzle.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE sentence_puzzles
		SET title = $2, instruction = $3, correct_sentence = $4, pinyin = $5, translation = $6, is_active = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		puzzle.ID,
		puzzle.Title,
		puzzle.Instruction,
		puzzle.CorrectSentence,
		puzzle.Pinyin,
		puzzle.Translation,
		puzzle.IsActive,
	)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrPuzzleNotFound)
}

// Delete implements store.PuzzleStore.Delete. Tiles are removed by cascade.
func (s *PuzzleStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sentence_puzzles WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrPuzzleNotFound)
}

func (s *PuzzleStore) listTiles(ctx context.Context, puzzleID uuid.UUID) ([]*domain.WordTile, error) {
	query := `
		SELECT id, puzzle_id, hanzi, "order"
		FROM word_tiles
		WHERE puzzle_id = $1
		ORDER BY "order"
	`
	rows, err := s.db.QueryContext(ctx, query, puzzleID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tiles := []*domain.WordTile{}
	for rows.Next() {
		var tile domain.WordTile
		if err := rows.Scan(&tile.ID, &tile.PuzzleID, &tile.Hanzi, &tile.Order); err != nil {
			return nil, MapError(err)
		}
		tiles = append(tiles, &tile)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tiles, nil
}

const puzzleSelect = `
	SELECT id, title, instruction, correct_sentence, pinyin, translation, is_active
	FROM sentence_puzzles`

func scanPuzzle(row rowScanner) (*domain.SentencePuzzle, error) {
	var puzzle domain.SentencePuzzle
	err := row.Scan(
		&puzzle.ID,
		&puzzle.Title,
		&puzzle.Instruction,
		&puzzle.CorrectSentence,
		&puzzle.Pinyin,
		&puzzle.Translation,
		&puzzle.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}
