package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/hanlearn/hanlearn-api/internal/service/auth"
)

// ContextKey is the type for context keys set by the API layer.
type ContextKey string

// Context keys for request-scoped values.
const (
	// ClaimsContextKey is the context key for the authenticated user's
	// token claims, set by the auth middleware.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// traceIDLength is the number of random bytes in a trace ID.
	traceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a freshly generated trace ID to the context, used to
// correlate logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	b := make([]byte, traceIDLength)
	// crypto/rand.Read never fails on supported platforms
	_, _ = rand.Read(b)
	return context.WithValue(ctx, TraceIDKey, hex.EncodeToString(b))
}

// GetTraceID retrieves the trace ID from the context, or an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithClaims returns a context carrying the authenticated user's claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext retrieves the authenticated user's claims from the
// context. The second return value reports whether claims were present.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}
