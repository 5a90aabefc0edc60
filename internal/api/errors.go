package api

import (
	"errors"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// respondStoreError translates a store or domain error into the standard
// error response. Not-found maps to 404, duplicates to 409, validation
// failures and bad references to 400, anything else to a sanitized 500.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case store.IsNotFoundError(err):
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	case store.IsDuplicateError(err):
		shared.RespondWithError(w, r, http.StatusConflict, duplicateMessage(err))
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", err)
	}
}

// duplicateMessage gives uniqueness conflicts a message a client can act on.
func duplicateMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already taken"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case errors.Is(err, store.ErrProgressExists):
		return "Progress for this lesson already exists"
	case errors.Is(err, store.ErrThreadExists):
		return "A thread between these users already exists"
	default:
		return "Resource already exists"
	}
}

// respondValidationError writes a 400 for a domain validation failure.
func respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
}
