package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// AboutHandler handles the site's about-page content. Reads are public;
// updates require staff access.
type AboutHandler struct {
	aboutStore store.AboutStore
	logger     *slog.Logger
}

// NewAboutHandler creates a new AboutHandler.
func NewAboutHandler(aboutStore store.AboutStore, logger *slog.Logger) *AboutHandler {
	return &AboutHandler{
		aboutStore: aboutStore,
		logger:     logger.With("component", "about_handler"),
	}
}

type aboutRequest struct {
	Content string `json:"content" validate:"required"`
	Photo   string `json:"photo" validate:"max=500"`
}

// Get handles GET /about.
func (h *AboutHandler) Get(w http.ResponseWriter, r *http.Request) {
	about, err := h.aboutStore.Get(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrAboutNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "About content not set")
			return
		}
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, about)
}

// Update handles PUT /about, replacing the singleton content record.
func (h *AboutHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req aboutRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "About content is required")
		return
	}

	about, err := domain.NewAbout(req.Content, req.Photo)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.aboutStore.Upsert(r.Context(), about); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("about content updated", "about_id", about.ID)
	shared.RespondWithJSON(w, r, http.StatusOK, about)
}
