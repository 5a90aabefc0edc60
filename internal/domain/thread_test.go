package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThread(t *testing.T) {
	t.Parallel()

	user1 := uuid.New()
	user2 := uuid.New()

	t.Run("valid thread", func(t *testing.T) {
		t.Parallel()

		thread, err := domain.NewThread(user1, user2)
		require.NoError(t, err)
		assert.True(t, thread.Includes(user1))
		assert.True(t, thread.Includes(user2))
		assert.False(t, thread.Includes(uuid.New()))
	})

	t.Run("same participant twice", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewThread(user1, user1)
		assert.ErrorIs(t, err, domain.ErrThreadSameUser)
	})

	t.Run("missing participant", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewThread(user1, uuid.Nil)
		assert.ErrorIs(t, err, domain.ErrEmptyThreadUser)
	})
}

func TestNewMessage(t *testing.T) {
	t.Parallel()

	threadID := uuid.New()
	senderID := uuid.New()

	message, err := domain.NewMessage(threadID, senderID, "你好!")
	require.NoError(t, err)
	assert.False(t, message.IsRead)
	assert.Equal(t, threadID, message.ThreadID)

	_, err = domain.NewMessage(threadID, senderID, "")
	assert.ErrorIs(t, err, domain.ErrEmptyMessageBody)
}
