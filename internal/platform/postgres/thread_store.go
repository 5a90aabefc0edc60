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

// ThreadStore implements store.ThreadStore using a PostgreSQL backend.
type ThreadStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewThreadStore creates a PostgreSQL implementation of store.ThreadStore.
func NewThreadStore(db store.DBTX, log *slog.Logger) *ThreadStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ThreadStore{
		db:     db,
		logger: log.With(slog.String("component", "thread_store")),
	}
}

var _ store.ThreadStore = (*ThreadStore)(nil)

// Create implements store.ThreadStore.Create. The user pair is stored as
// given; the unique constraint rejects an exact duplicate pair.
func (s *ThreadStore) Create(ctx context.Context, thread *domain.Thread) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := thread.Validate(); err != nil {
		log.Warn("thread validation failed during create",
			slog.String("error", err.Error()),
			slog.String("thread_id", thread.ID.String()))
		return err
	}

	query := `
		INSERT INTO threads (id, user1_id, user2_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, thread.ID, thread.User1ID, thread.User2ID, thread.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err, "threads_user_pair_key") {
			return store.ErrThreadExists
		}
		log.Error("failed to create thread",
			slog.String("error", err.Error()),
			slog.String("thread_id", thread.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetForUser implements store.ThreadStore.GetForUser.
func (s *ThreadStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Thread, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM threads
		WHERE id = $1 AND (user1_id = $2 OR user2_id = $2)
	`
	var thread domain.Thread
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&thread.ID,
		&thread.User1ID,
		&thread.User2ID,
		&thread.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrThreadNotFound
		}
		return nil, MapError(err)
	}
	return &thread, nil
}

// ListForUser implements store.ThreadStore.ListForUser.
func (s *ThreadStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Thread, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM threads
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	threads := []*domain.Thread{}
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(&thread.ID, &thread.User1ID, &thread.User2ID, &thread.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		threads = append(threads, &thread)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return threads, nil
}

// CreateMessage implements store.ThreadStore.CreateMessage.
func (s *ThreadStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := message.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO messages (id, thread_id, sender_id, body, timestamp, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.ThreadID,
		message.SenderID,
		message.Body,
		message.Timestamp,
		message.IsRead,
	)
	if err != nil {
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.String("thread_id", message.ThreadID.String()))
		return MapError(err)
	}

	return nil
}

// ListMessages implements store.ThreadStore.ListMessages.
func (s *ThreadStore) ListMessages(ctx context.Context, threadID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT m.id, m.thread_id, m.sender_id, u.username, m.body, m.timestamp, m.is_read
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.thread_id = $1
		ORDER BY m.timestamp
	`
	rows, err := s.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	messages := []*domain.Message{}
	for rows.Next() {
		var message domain.Message
		err := rows.Scan(
			&message.ID,
			&message.ThreadID,
			&message.SenderID,
			&message.SenderUsername,
			&message.Body,
			&message.Timestamp,
			&message.IsRead,
		)
		if err != nil {
			return nil, MapError(err)
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return messages, nil
}
