package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// PictureGuessStore defines the interface for picture-guess question
// persistence, including the questions' owned multiple-choice options.
type PictureGuessStore interface {
	// Create saves a new question along with any embedded options.
	Create(ctx context.Context, question *domain.PictureGuessQuestion) error

	// GetByID retrieves a question by ID with options embedded.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PictureGuessQuestion, error)

	// ListActive returns all active questions with options embedded.
	ListActive(ctx context.Context) ([]*domain.PictureGuessQuestion, error)

	// Update modifies an existing question's writable fields.
	// Returns ErrQuestionNotFound if the question does not exist.
	Update(ctx context.Context, question *domain.PictureGuessQuestion) error

	// Delete removes a question and, by cascade, its options.
	// Returns ErrQuestionNotFound if the question does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateOption adds an option to a question. The one-correct-option
	// rule is validated against the question's existing options and backed
	// by a partial unique index, so a concurrent write still fails with
	// ErrDuplicate.
	CreateOption(ctx context.Context, option *domain.MultipleChoiceOption) error

	// UpdateOption modifies an option's text and correctness, applying the
	// same one-correct-option validation excluding the option itself.
	// Returns ErrOptionNotFound if the option does not exist.
	UpdateOption(ctx context.Context, option *domain.MultipleChoiceOption) error

	// DeleteOption removes an option.
	// Returns ErrOptionNotFound if the option does not exist.
	DeleteOption(ctx context.Context, id uuid.UUID) error
}

// MatchingStore defines the interface for matching exercise persistence.
type MatchingStore interface {
	// Create saves a new exercise along with any embedded pairs.
	Create(ctx context.Context, exercise *domain.MatchingExercise) error

	// GetByID retrieves an exercise by ID with pairs embedded.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchingExercise, error)

	// ListActive returns all active exercises with pairs embedded.
	ListActive(ctx context.Context) ([]*domain.MatchingExercise, error)

	// Update modifies an existing exercise's writable fields.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	Update(ctx context.Context, exercise *domain.MatchingExercise) error

	// Delete removes an exercise and, by cascade, its pairs.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PuzzleStore defines the interface for sentence puzzle persistence.
type PuzzleStore interface {
	// Create saves a new puzzle along with any embedded tiles.
	Create(ctx context.Context, puzzle *domain.SentencePuzzle) error

	// GetByID retrieves a puzzle by ID with tiles embedded in
	// order-ascending sequence.
	// Returns ErrPuzzleNotFound if the puzzle does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SentencePuzzle, error)

	// ListActive returns all active puzzles with ordered tiles embedded.
	ListActive(ctx context.Context) ([]*domain.SentencePuzzle, error)

	// Update modifies an existing puzzle's writable fields.
	// Returns ErrPuzzleNotFound if the puzzle does not exist.
	Update(ctx context.Context, puzzle *domain.SentencePuzzle) error

	// Delete removes a puzzle and, by cascade, its tiles.
	// Returns ErrPuzzleNotFound if the puzzle does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
