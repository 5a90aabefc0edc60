package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyAboutContent is returned when an About record has no content.
var ErrEmptyAboutContent = errors.New("about content cannot be empty")

// About is the site's "about" page content. The application treats it as a
// singleton: reads return the most recently updated record.
type About struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Photo     string    `json:"photo"` // media path, may be empty
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAbout creates an About record with the given content and photo path.
func NewAbout(content, photo string) (*About, error) {
	a := &About{
		ID:        uuid.New(),
		Content:   content,
		Photo:     photo,
		UpdatedAt: time.Now().UTC(),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the About record has valid data.
func (a *About) Validate() error {
	if a.ID == uuid.Nil {
		return ErrInvalidID
	}
	if a.Content == "" {
		return ErrEmptyAboutContent
	}
	return nil
}
