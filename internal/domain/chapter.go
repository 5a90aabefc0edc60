package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Chapter validation errors
var (
	ErrEmptyChapterID    = errors.New("chapter ID cannot be empty")
	ErrEmptyChapterTitle = errors.New("chapter title cannot be empty")
	ErrNegativeOrder     = errors.New("order cannot be negative")
)

// Chapter is a top-level content unit containing ordered Lessons.
// CreatedBy is nilable: deleting the creating user keeps the chapter and
// nulls the reference.
type Chapter struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	IsPublished bool       `json:"is_published"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Lessons     []*Lesson  `json:"lessons,omitempty"`
}

// NewChapter creates a Chapter with the given title, description and order.
func NewChapter(title, description string, order int, createdBy *uuid.UUID) (*Chapter, error) {
	c := &Chapter{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Order:       order,
		IsPublished: true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Chapter has valid data.
func (c *Chapter) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyChapterID
	}
	if c.Title == "" {
		return ErrEmptyChapterTitle
	}
	if c.Order < 0 {
		return ErrNegativeOrder
	}
	return nil
}
