package api

import (
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// PostHandler handles social feed HTTP requests. Every route requires an
// authenticated user; reads are scoped to published posts.
type PostHandler struct {
	postStore store.PostStore
	logger    *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postStore store.PostStore, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postStore: postStore,
		logger:    logger.With("component", "post_handler"),
	}
}

type postRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Body        string `json:"body" validate:"required"`
	IsPublished *bool  `json:"is_published"`
}

// List handles GET /posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postStore.ListPublished(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// Get handles GET /posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postStore.GetPublished(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// Create handles POST /posts. The author is always the authenticated user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid post details")
		return
	}

	post, err := domain.NewPost(userID, req.Title, req.Body)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := h.postStore.Create(r.Context(), post); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("post created", "post_id", post.ID, "author_id", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

// Update handles PUT /posts/{id}, replacing the post's writable fields.
// Authorship does not change on update.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req postRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid post details")
		return
	}

	post, err := h.postStore.GetPublished(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	post.Title = req.Title
	post.Body = req.Body
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := h.postStore.Update(r.Context(), post); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}. Comments under the post are removed by
// cascade.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.postStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("post deleted", "post_id", id)
	w.WriteHeader(http.StatusNoContent)
}
