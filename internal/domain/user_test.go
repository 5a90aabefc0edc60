package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "meilin",
			email:    "meilin@example.com",
			password: "securepassword",
			wantErr:  nil,
		},
		{
			name:     "empty username",
			username: "",
			email:    "meilin@example.com",
			password: "securepassword",
			wantErr:  domain.ErrEmptyUsername,
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 151),
			email:    "meilin@example.com",
			password: "securepassword",
			wantErr:  domain.ErrUsernameTooLong,
		},
		{
			name:     "empty email",
			username: "meilin",
			email:    "",
			password: "securepassword",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "malformed email",
			username: "meilin",
			email:    "not-an-email",
			password: "securepassword",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "password too short",
			username: "meilin",
			email:    "meilin@example.com",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			username: "meilin",
			email:    "meilin@example.com",
			password: strings.Repeat("p", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.username, user.Username)
			assert.False(t, user.IsStaff)
			assert.False(t, user.IsSuperuser)
		})
	}
}

func TestUserValidateHashedOnly(t *testing.T) {
	t.Parallel()

	// A user loaded from storage has no plaintext password.
	user := &domain.User{
		ID:             uuid.New(),
		Username:       "meilin",
		Email:          "meilin@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}
