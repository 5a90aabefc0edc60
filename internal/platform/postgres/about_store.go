package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// AboutStore implements store.AboutStore using a PostgreSQL backend.
type AboutStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAboutStore creates a PostgreSQL implementation of store.AboutStore.
func NewAboutStore(db store.DBTX, log *slog.Logger) *AboutStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AboutStore{
		db:     db,
		logger: log.With(slog.String("component", "about_store")),
	}
}

var _ store.AboutStore = (*AboutStore)(nil)

// Get implements store.AboutStore.Get.
func (s *AboutStore) Get(ctx context.Context) (*domain.About, error) {
	query := `
		SELECT id, content, photo, updated_at
		FROM about
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var about domain.About
	err := s.db.QueryRowContext(ctx, query).Scan(&about.ID, &about.Content, &about.Photo, &about.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAboutNotFound
		}
		return nil, MapError(err)
	}
	return &about, nil
}

// Upsert implements store.AboutStore.Upsert. The existing record (if any) is
// updated in place so the table keeps a single effective row.
func (s *AboutStore) Upsert(ctx context.Context, about *domain.About) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := about.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	existing, err := s.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO about (id, content, photo, updated_at) VALUES ($1, $2, $3, $4)`,
			about.ID, about.Content, about.Photo, now,
		)
		if err != nil {
			log.Error("failed to insert about record", slog.String("error", err.Error()))
			return MapError(err)
		}
		about.UpdatedAt = now
		return nil
	}

	_, err = s.db.ExecContext(
		ctx,
		`UPDATE about SET content = $2, photo = $3, updated_at = $4 WHERE id = $1`,
		existing.ID, about.Content, about.Photo, now,
	)
	if err != nil {
		log.Error("failed to update about record", slog.String("error", err.Error()))
		return MapError(err)
	}

	about.ID = existing.ID
	about.UpdatedAt = now
	return nil
}
