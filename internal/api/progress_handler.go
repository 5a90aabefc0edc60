package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// ProgressHandler handles lesson progress HTTP requests. Every operation is
// scoped to the authenticated user: the owner is taken from the token, never
// from the request body, and reads only ever see the caller's own records.
type ProgressHandler struct {
	progressStore store.ProgressStore
	logger        *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressStore store.ProgressStore, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressStore: progressStore,
		logger:        logger.With("component", "progress_handler"),
	}
}

type createProgressRequest struct {
	LessonID  string `json:"lesson_id" validate:"required,uuid"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score" validate:"min=0"`
}

type updateProgressRequest struct {
	Completed bool `json:"completed"`
	Score     int  `json:"score" validate:"min=0"`
}

// List handles GET /progress, returning the caller's own records.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	records, err := h.progressStore.ListForUser(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// Get handles GET /progress/{id}. Records owned by other users are
// indistinguishable from missing ones.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	record, err := h.progressStore.GetForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// Create handles POST /progress. A second record for the same lesson
// conflicts; clients update the existing one instead.
func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req createProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid progress details")
		return
	}
	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	record, err := domain.NewLessonProgress(userID, lessonID, req.Completed, req.Score)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.progressStore.Create(r.Context(), record); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("progress created", "progress_id", record.ID, "lesson_id", lessonID)
	shared.RespondWithJSON(w, r, http.StatusCreated, record)
}

// Update handles PUT /progress/{id} for a record owned by the caller.
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid progress details")
		return
	}

	record := &domain.LessonProgress{
		ID:        id,
		UserID:    userID,
		Completed: req.Completed,
		Score:     req.Score,
	}
	if err := h.progressStore.UpdateForUser(r.Context(), record); err != nil {
		respondStoreError(w, r, err)
		return
	}

	updated, err := h.progressStore.GetForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /progress/{id} for a record owned by the caller.
func (h *ProgressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.progressStore.DeleteForUser(r.Context(), id, userID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
