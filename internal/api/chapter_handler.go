package api

import (
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// ChapterHandler handles chapter HTTP requests. Reads are public and scoped
// to published chapters; writes require staff access, enforced upstream by
// the AdminOrReadOnly middleware.
type ChapterHandler struct {
	chapterStore store.ChapterStore
	logger       *slog.Logger
}

// NewChapterHandler creates a new ChapterHandler.
func NewChapterHandler(chapterStore store.ChapterStore, logger *slog.Logger) *ChapterHandler {
	return &ChapterHandler{
		chapterStore: chapterStore,
		logger:       logger.With("component", "chapter_handler"),
	}
}

type chapterRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Order       int    `json:"order" validate:"min=0"`
	IsPublished *bool  `json:"is_published"`
}

// List handles GET /chapters.
func (h *ChapterHandler) List(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.chapterStore.ListPublished(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, chapters)
}

// Get handles GET /chapters/{id}.
func (h *ChapterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	chapter, err := h.chapterStore.GetPublished(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, chapter)
}

// Create handles POST /chapters.
func (h *ChapterHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req chapterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid chapter details")
		return
	}

	chapter, err := domain.NewChapter(req.Title, req.Description, req.Order, &userID)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}
	if req.IsPublished != nil {
		chapter.IsPublished = *req.IsPublished
	}

	if err := h.chapterStore.Create(r.Context(), chapter); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("chapter created", "chapter_id", chapter.ID, "created_by", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, chapter)
}

// Update handles PUT /chapters/{id}, replacing the chapter's writable fields.
func (h *ChapterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req chapterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid chapter details")
		return
	}

	chapter := &domain.Chapter{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		chapter.IsPublished = *req.IsPublished
	}
	if err := chapter.Validate(); err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.chapterStore.Update(r.Context(), chapter); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, chapter)
}

// Delete handles DELETE /chapters/{id}. Lessons under the chapter are
// removed by cascade.
func (h *ChapterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.chapterStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("chapter deleted", "chapter_id", id)
	w.WriteHeader(http.StatusNoContent)
}
