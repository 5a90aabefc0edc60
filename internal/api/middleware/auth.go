package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
)

// AuthMiddleware validates bearer tokens and enforces access policies.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates middleware backed by the given token validator.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the Authorization header when present and stores
// the token claims in the request context. Requests without a token pass
// through unauthenticated; a malformed or invalid token is rejected so a
// client never silently degrades to anonymous access.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), tokenString)
		if err != nil {
			log := logger.FromContext(r.Context())
			log.Debug("token validation failed",
				"error", err,
				"path", r.URL.Path)
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithClaims(r.Context(), claims)))
	})
}

// RequireAuth rejects requests that carry no authenticated claims.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.ClaimsFromContext(r.Context()); !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOrReadOnly allows safe methods for everyone, including anonymous
// clients, and restricts mutating methods to staff users.
func AdminOrReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := shared.ClaimsFromContext(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !claims.IsStaff {
			shared.RespondWithError(w, r, http.StatusForbidden, "Admin privileges required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorizedMessage(err error) string {
	if errors.Is(err, auth.ErrExpiredToken) {
		return "Token expired"
	}
	return "Invalid token"
}
