package store

import (
	"context"

	"github.com/hanlearn/hanlearn-api/internal/domain"
)

// AboutStore defines the interface for the about-page content record.
type AboutStore interface {
	// Get returns the most recently updated About record.
	// Returns ErrAboutNotFound if none exists.
	Get(ctx context.Context) (*domain.About, error)

	// Upsert updates the existing About record in place, or inserts one
	// when none exists yet, stamping updated_at server-side.
	Upsert(ctx context.Context, about *domain.About) error
}
