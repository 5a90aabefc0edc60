package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lesson, Flashcard and Quiz validation errors
var (
	ErrEmptyLessonID        = errors.New("lesson ID cannot be empty")
	ErrEmptyLessonChapter   = errors.New("lesson chapter ID cannot be empty")
	ErrEmptyLessonTitle     = errors.New("lesson title cannot be empty")
	ErrEmptyFlashcardID     = errors.New("flashcard ID cannot be empty")
	ErrEmptyFlashcardLesson = errors.New("flashcard lesson ID cannot be empty")
	ErrEmptyFlashcardHanzi  = errors.New("flashcard hanzi cannot be empty")
	ErrEmptyQuizID          = errors.New("quiz ID cannot be empty")
	ErrEmptyQuizLesson      = errors.New("quiz lesson ID cannot be empty")
	ErrEmptyQuizQuestion    = errors.New("quiz question cannot be empty")

	// ErrInvalidCorrectAnswer is returned when a quiz's correct answer is
	// not one of the four option letters.
	ErrInvalidCorrectAnswer = fmt.Errorf("%w: correct answer must be A, B, C, or D", ErrValidation)
)

// Lesson belongs to a Chapter and carries the actual learning material.
// Flashcards and Quizzes are embedded read-only on reads.
type Lesson struct {
	ID          uuid.UUID    `json:"id"`
	ChapterID   uuid.UUID    `json:"chapter_id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Photo       string       `json:"photo"` // media path, may be empty
	Order       int          `json:"order"`
	IsPublished bool         `json:"is_published"`
	CreatedBy   *uuid.UUID   `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Flashcards  []*Flashcard `json:"flashcards,omitempty"`
	Quizzes     []*Quiz      `json:"quizzes,omitempty"`
}

// NewLesson creates a Lesson in the given chapter.
func NewLesson(chapterID uuid.UUID, title, content string, order int, createdBy *uuid.UUID) (*Lesson, error) {
	l := &Lesson{
		ID:          uuid.New(),
		ChapterID:   chapterID,
		Title:       title,
		Content:     content,
		Order:       order,
		IsPublished: true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate checks if the Lesson has valid data.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLessonID
	}
	if l.ChapterID == uuid.Nil {
		return ErrEmptyLessonChapter
	}
	if l.Title == "" {
		return ErrEmptyLessonTitle
	}
	if l.Order < 0 {
		return ErrNegativeOrder
	}
	return nil
}

// Flashcard is a vocabulary drill item attached to a Lesson.
type Flashcard struct {
	ID       uuid.UUID `json:"id"`
	LessonID uuid.UUID `json:"lesson_id"`
	Hanzi    string    `json:"hanzi"`
	Pinyin   string    `json:"pinyin"`
	Meaning  string    `json:"meaning"`
}

// NewFlashcard creates a Flashcard in the given lesson.
func NewFlashcard(lessonID uuid.UUID, hanzi, pinyin, meaning string) (*Flashcard, error) {
	f := &Flashcard{
		ID:       uuid.New(),
		LessonID: lessonID,
		Hanzi:    hanzi,
		Pinyin:   pinyin,
		Meaning:  meaning,
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFlashcardID
	}
	if f.LessonID == uuid.Nil {
		return ErrEmptyFlashcardLesson
	}
	if f.Hanzi == "" {
		return ErrEmptyFlashcardHanzi
	}
	return nil
}

// Quiz is a four-option multiple-choice question attached to a Lesson.
// CorrectAnswer is never serialized to clients; the API layer strips it.
type Quiz struct {
	ID            uuid.UUID `json:"id"`
	LessonID      uuid.UUID `json:"lesson_id"`
	Question      string    `json:"question"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectAnswer string    `json:"-"`
	IsActive      bool      `json:"is_active"`
}

// NewQuiz creates a Quiz in the given lesson.
func NewQuiz(lessonID uuid.UUID, question, a, b, c, d, correct string) (*Quiz, error) {
	q := &Quiz{
		ID:            uuid.New(),
		LessonID:      lessonID,
		Question:      question,
		OptionA:       a,
		OptionB:       b,
		OptionC:       c,
		OptionD:       d,
		CorrectAnswer: correct,
		IsActive:      true,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the Quiz has valid data. The correct answer must be
// one of the option letters A-D.
func (q *Quiz) Validate() error {
	if q.ID == uuid.Nil {
		return ErrEmptyQuizID
	}
	if q.LessonID == uuid.Nil {
		return ErrEmptyQuizLesson
	}
	if q.Question == "" {
		return ErrEmptyQuizQuestion
	}
	switch q.CorrectAnswer {
	case "A", "B", "C", "D":
	default:
		return ErrInvalidCorrectAnswer
	}
	return nil
}
