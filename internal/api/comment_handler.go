package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// CommentHandler handles comment HTTP requests. Every route requires an
// authenticated user.
type CommentHandler struct {
	commentStore store.CommentStore
	logger       *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentStore store.CommentStore, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentStore: commentStore,
		logger:       logger.With("component", "comment_handler"),
	}
}

type createCommentRequest struct {
	PostID string `json:"post_id" validate:"required,uuid"`
	Body   string `json:"body" validate:"required"`
}

type updateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// List handles GET /comments, returning all comments oldest first.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentStore.List(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, comments)
}

// Get handles GET /comments/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.commentStore.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, comment)
}

// Create handles POST /comments. The commenter is always the authenticated
// user.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid comment details")
		return
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid post ID")
		return
	}

	comment, err := domain.NewComment(postID, userID, req.Body)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.commentStore.Create(r.Context(), comment); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("comment created", "comment_id", comment.ID, "post_id", postID)
	shared.RespondWithJSON(w, r, http.StatusCreated, comment)
}

// Update handles PUT /comments/{id}, replacing the comment body.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid comment details")
		return
	}

	comment := &domain.Comment{ID: id, Body: req.Body}
	if err := h.commentStore.Update(r.Context(), comment); err != nil {
		respondStoreError(w, r, err)
		return
	}

	updated, err := h.commentStore.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.commentStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("comment deleted", "comment_id", id)
	w.WriteHeader(http.StatusNoContent)
}
