package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// ProfileHandler handles requests for the authenticated user's profile.
type ProfileHandler struct {
	profileStore store.ProfileStore
	logger       *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileStore store.ProfileStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileStore: profileStore,
		logger:       logger.With("component", "profile_handler"),
	}
}

type updateProfileRequest struct {
	Bio    string `json:"bio"`
	Avatar string `json:"avatar" validate:"max=500"`
}

// Get handles GET /profile, returning the caller's own profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	profile, err := h.profileStore.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Profile not found")
			return
		}
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// Update handles PUT /profile, creating the caller's profile on first use
// and replacing its writable fields afterwards.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid profile details")
		return
	}

	profile, err := domain.NewProfile(userID, req.Bio, req.Avatar)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.profileStore.Upsert(r.Context(), profile); err != nil {
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
