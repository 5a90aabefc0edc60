package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Thread and Message validation errors
var (
	ErrEmptyThreadID       = errors.New("thread ID cannot be empty")
	ErrEmptyThreadUser     = errors.New("thread participants cannot be empty")
	ErrThreadSameUser      = errors.New("thread participants must be distinct users")
	ErrEmptyMessageID      = errors.New("message ID cannot be empty")
	ErrEmptyMessageThread  = errors.New("message thread ID cannot be empty")
	ErrEmptyMessageSender  = errors.New("message sender ID cannot be empty")
	ErrEmptyMessageBody    = errors.New("message body cannot be empty")
	ErrSenderNotInThread   = errors.New("message sender is not a thread participant")
)

// Thread is a private two-party conversation. The (User1ID, User2ID) pair is
// unique at the storage layer; the pair is stored exactly as created, no
// normalization of participant order is applied.
type Thread struct {
	ID        uuid.UUID `json:"id"`
	User1ID   uuid.UUID `json:"user1_id"`
	User2ID   uuid.UUID `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewThread creates a Thread between two users.
func NewThread(user1ID, user2ID uuid.UUID) (*Thread, error) {
	t := &Thread{
		ID:        uuid.New(),
		User1ID:   user1ID,
		User2ID:   user2ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the Thread has valid data.
func (t *Thread) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyThreadID
	}
	if t.User1ID == uuid.Nil || t.User2ID == uuid.Nil {
		return ErrEmptyThreadUser
	}
	if t.User1ID == t.User2ID {
		return ErrThreadSameUser
	}
	return nil
}

// Includes reports whether the given user is a participant of the thread.
func (t *Thread) Includes(userID uuid.UUID) bool {
	return t.User1ID == userID || t.User2ID == userID
}

// Message belongs to a Thread and is listed in timestamp-ascending order.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ThreadID       uuid.UUID `json:"thread_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	SenderUsername string    `json:"sender_username,omitempty"` // derived at read time
	Body           string    `json:"body"`
	Timestamp      time.Time `json:"timestamp"`
	IsRead         bool      `json:"is_read"`
}

// NewMessage creates a Message in the given thread from the given sender.
func NewMessage(threadID, senderID uuid.UUID, body string) (*Message, error) {
	m := &Message{
		ID:        uuid.New(),
		ThreadID:  threadID,
		SenderID:  senderID,
		Body:      body,
		Timestamp: time.Now().UTC(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMessageID
	}
	if m.ThreadID == uuid.Nil {
		return ErrEmptyMessageThread
	}
	if m.SenderID == uuid.Nil {
		return ErrEmptyMessageSender
	}
	if m.Body == "" {
		return ErrEmptyMessageBody
	}
	return nil
}
