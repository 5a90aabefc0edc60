package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile validation errors
var (
	ErrEmptyProfileID     = errors.New("profile ID cannot be empty")
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
)

// Profile holds the per-user public profile. Exactly one profile exists per
// user; the storage layer enforces this with a unique constraint.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"` // media path, may be empty
	CreatedAt time.Time `json:"created_at"`
}

// NewProfile creates a Profile for the given user.
func NewProfile(userID uuid.UUID, bio, avatar string) (*Profile, error) {
	p := &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Bio:       bio,
		Avatar:    avatar,
		CreatedAt: time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	return nil
}
