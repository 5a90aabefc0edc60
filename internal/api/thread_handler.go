package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// ThreadHandler handles private conversation HTTP requests. Threads and
// their messages are only visible to participants; a non-participant gets
// the same 404 as a missing thread.
type ThreadHandler struct {
	threadStore store.ThreadStore
	logger      *slog.Logger
}

// NewThreadHandler creates a new ThreadHandler.
func NewThreadHandler(threadStore store.ThreadStore, logger *slog.Logger) *ThreadHandler {
	return &ThreadHandler{
		threadStore: threadStore,
		logger:      logger.With("component", "thread_handler"),
	}
}

type createThreadRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
}

type createMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// List handles GET /threads, returning the caller's conversations newest
// first.
func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	threads, err := h.threadStore.ListForUser(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, threads)
}

// Get handles GET /threads/{id}.
func (h *ThreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	thread, err := h.threadStore.GetForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, thread)
}

// Create handles POST /threads, opening a conversation between the caller
// and the recipient.
func (h *ThreadHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req createThreadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid thread details")
		return
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid recipient ID")
		return
	}

	thread, err := domain.NewThread(userID, recipientID)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.threadStore.Create(r.Context(), thread); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("thread created", "thread_id", thread.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, thread)
}

// ListMessages handles GET /threads/{id}/messages, oldest first.
func (h *ThreadHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	// Participant check doubles as the existence check.
	if _, err := h.threadStore.GetForUser(r.Context(), id, userID); err != nil {
		respondStoreError(w, r, err)
		return
	}

	messages, err := h.threadStore.ListMessages(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, messages)
}

// CreateMessage handles POST /threads/{id}/messages. The sender is always
// the authenticated user.
func (h *ThreadHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req createMessageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Message body is required")
		return
	}

	if _, err := h.threadStore.GetForUser(r.Context(), id, userID); err != nil {
		respondStoreError(w, r, err)
		return
	}

	message, err := domain.NewMessage(id, userID, req.Body)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.threadStore.CreateMessage(r.Context(), message); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, message)
}
