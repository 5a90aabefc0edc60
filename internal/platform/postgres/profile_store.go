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

// ProfileStore implements store.ProfileStore using a PostgreSQL backend.
type ProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProfileStore creates a PostgreSQL implementation of store.ProfileStore.
func NewProfileStore(db store.DBTX, log *slog.Logger) *ProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ProfileStore{
		db:     db,
		logger: log.With(slog.String("component", "profile_store")),
	}
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// GetByUserID implements store.ProfileStore.GetByUserID.
func (s *ProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, bio, avatar, created_at
		FROM profiles
		WHERE user_id = $1
	`
	var p domain.Profile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Bio,
		&p.Avatar,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		return nil, MapError(err)
	}
	return &p, nil
}

// Upsert implements store.ProfileStore.Upsert. The unique constraint on
// user_id carries the one-profile-per-user invariant; a second write for the
// same user updates the existing row in place.
func (s *ProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (id, user_id, bio, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET bio = EXCLUDED.bio, avatar = EXCLUDED.avatar
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.Bio,
		profile.Avatar,
		profile.CreatedAt,
	)
	if err != nil {
		log.Error("failed to upsert profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return MapError(err)
	}

	return nil
}
