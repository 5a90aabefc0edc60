package middleware

import (
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
)

// Trace attaches a trace ID to each request's context so that log lines
// and error responses produced while serving it can be correlated.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
