package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// ChapterStore defines the interface for chapter persistence.
//
// The published filter is applied at the collection-source level: unpublished
// chapters are invisible through ListPublished and GetPublished for every
// role, including administrators.
type ChapterStore interface {
	// Create saves a new chapter.
	Create(ctx context.Context, chapter *domain.Chapter) error

	// GetPublished retrieves a published chapter by ID with its published
	// lessons (and their flashcards and quizzes) embedded.
	// Returns ErrChapterNotFound if the chapter does not exist or is
	// unpublished.
	GetPublished(ctx context.Context, id uuid.UUID) (*domain.Chapter, error)

	// ListPublished returns all published chapters in order-ascending
	// sequence, each with its published lessons embedded.
	ListPublished(ctx context.Context) ([]*domain.Chapter, error)

	// Update modifies an existing chapter's writable fields.
	// Returns ErrChapterNotFound if the chapter does not exist.
	Update(ctx context.Context, chapter *domain.Chapter) error

	// Delete removes a chapter and, by cascade, all its lessons.
	// Returns ErrChapterNotFound if the chapter does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// LessonStore defines the interface for lesson persistence, including the
// lesson's owned flashcards and quizzes.
type LessonStore interface {
	// Create saves a new lesson.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetPublished retrieves a published lesson by ID with its flashcards
	// and quizzes embedded.
	// Returns ErrLessonNotFound if the lesson does not exist or is
	// unpublished.
	GetPublished(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ListPublished returns all published lessons in order-ascending
	// sequence with flashcards and quizzes embedded.
	ListPublished(ctx context.Context) ([]*domain.Lesson, error)

	// Update modifies an existing lesson's writable fields.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Update(ctx context.Context, lesson *domain.Lesson) error

	// Delete removes a lesson and, by cascade, its flashcards and quizzes.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateFlashcard saves a new flashcard under the lesson it references.
	CreateFlashcard(ctx context.Context, card *domain.Flashcard) error

	// CreateQuiz saves a new quiz under the lesson it references. The quiz
	// must pass domain validation (correct answer in A-D); the storage
	// layer additionally enforces this with a check constraint.
	CreateQuiz(ctx context.Context, quiz *domain.Quiz) error
}
