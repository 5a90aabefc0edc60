package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
)

// parseIDParam parses a UUID URL parameter. On failure it writes a 400
// response and returns false; the handler should return immediately.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// mustClaims retrieves the authenticated claims from the request context.
// Routes behind RequireAuth or AdminOrReadOnly always have claims; the 401
// here is a safety net for misconfigured routing.
func mustClaims(w http.ResponseWriter, r *http.Request) (userID uuid.UUID, ok bool) {
	claims, ok := shared.ClaimsFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return claims.UserID, true
}
