package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/middleware"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockJWTService implements auth.JWTService for middleware tests.
type mockJWTService struct {
	claims *auth.Claims
	err    error
}

func (m *mockJWTService) GenerateToken(ctx context.Context, claims auth.Claims) (string, error) {
	return "mock-token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

// claimsEcho records whether the downstream handler ran and what claims it
// saw.
func claimsEcho(called *bool, got **auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if claims, ok := shared.ClaimsFromContext(r.Context()); ok {
			*got = claims
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid token attaches claims", func(t *testing.T) {
		t.Parallel()

		svc := &mockJWTService{claims: &auth.Claims{UserID: userID, IsStaff: true}}
		var called bool
		var got *auth.Claims
		handler := middleware.NewAuthMiddleware(svc).Authenticate(claimsEcho(&called, &got))

		req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.True(t, called)
		require.NotNil(t, got)
		assert.Equal(t, userID, got.UserID)
		assert.True(t, got.IsStaff)
	})

	t.Run("no token passes through anonymously", func(t *testing.T) {
		t.Parallel()

		svc := &mockJWTService{err: auth.ErrInvalidToken}
		var called bool
		var got *auth.Claims
		handler := middleware.NewAuthMiddleware(svc).Authenticate(claimsEcho(&called, &got))

		req := httptest.NewRequest(http.MethodGet, "/api/chapters", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, called)
		assert.Nil(t, got)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		t.Parallel()

		svc := &mockJWTService{err: auth.ErrInvalidToken}
		var called bool
		var got *auth.Claims
		handler := middleware.NewAuthMiddleware(svc).Authenticate(claimsEcho(&called, &got))

		req := httptest.NewRequest(http.MethodGet, "/api/chapters", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, called)
	})

	t.Run("expired token reported distinctly", func(t *testing.T) {
		t.Parallel()

		svc := &mockJWTService{err: auth.ErrExpiredToken}
		var called bool
		var got *auth.Claims
		handler := middleware.NewAuthMiddleware(svc).Authenticate(claimsEcho(&called, &got))

		req := httptest.NewRequest(http.MethodGet, "/api/chapters", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token expired")
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAuth(next)

	t.Run("authenticated request passes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
		ctx := shared.WithClaims(req.Context(), &auth.Claims{UserID: uuid.New()})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("anonymous request rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminOrReadOnly(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.AdminOrReadOnly(next)

	tests := []struct {
		name       string
		method     string
		claims     *auth.Claims
		wantStatus int
	}{
		{
			name:       "anonymous read allowed",
			method:     http.MethodGet,
			claims:     nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-staff read allowed",
			method:     http.MethodGet,
			claims:     &auth.Claims{UserID: uuid.New()},
			wantStatus: http.StatusOK,
		},
		{
			name:       "anonymous write rejected",
			method:     http.MethodPost,
			claims:     nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-staff write forbidden",
			method:     http.MethodPost,
			claims:     &auth.Claims{UserID: uuid.New()},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "staff write allowed",
			method:     http.MethodPost,
			claims:     &auth.Claims{UserID: uuid.New(), IsStaff: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "staff delete allowed",
			method:     http.MethodDelete,
			claims:     &auth.Claims{UserID: uuid.New(), IsStaff: true},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/chapters", nil)
			if tt.claims != nil {
				req = req.WithContext(shared.WithClaims(req.Context(), tt.claims))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
