package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LessonProgress validation errors
var (
	ErrEmptyProgressID     = errors.New("progress ID cannot be empty")
	ErrEmptyProgressUser   = errors.New("progress user ID cannot be empty")
	ErrEmptyProgressLesson = errors.New("progress lesson ID cannot be empty")
	ErrNegativeScore       = errors.New("score cannot be negative")
)

// LessonProgress records a user's completion state and score for a lesson.
// At most one record exists per (user, lesson) pair, enforced by a unique
// constraint at the storage layer.
type LessonProgress struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	Completed bool      `json:"completed"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLessonProgress creates a progress record for the given user and lesson.
func NewLessonProgress(userID, lessonID uuid.UUID, completed bool, score int) (*LessonProgress, error) {
	p := &LessonProgress{
		ID:        uuid.New(),
		UserID:    userID,
		LessonID:  lessonID,
		Completed: completed,
		Score:     score,
		UpdatedAt: time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the LessonProgress has valid data.
func (p *LessonProgress) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProgressID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUser
	}
	if p.LessonID == uuid.Nil {
		return ErrEmptyProgressLesson
	}
	if p.Score < 0 {
		return ErrNegativeScore
	}
	return nil
}
