package api

import (
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// MatchingHandler handles matching exercise HTTP requests. Reads are public;
// writes require staff access.
type MatchingHandler struct {
	exerciseStore store.MatchingStore
	logger        *slog.Logger
}

// NewMatchingHandler creates a new MatchingHandler.
func NewMatchingHandler(exerciseStore store.MatchingStore, logger *slog.Logger) *MatchingHandler {
	return &MatchingHandler{
		exerciseStore: exerciseStore,
		logger:        logger.With("component", "matching_handler"),
	}
}

type matchingRequest struct {
	Title        string              `json:"title" validate:"required,max=255"`
	Instructions string              `json:"instructions" validate:"max=500"`
	ExerciseType domain.ExerciseType `json:"exercise_type" validate:"required,oneof=pinyin_hanzi hanzi_english"`
	IsActive     *bool               `json:"is_active"`
	Pairs        []pairRequest       `json:"pairs" validate:"dive"`
}

type pairRequest struct {
	Hanzi   string `json:"hanzi" validate:"required,max=50"`
	Pinyin  string `json:"pinyin" validate:"max=100"`
	English string `json:"english" validate:"max=255"`
}

// List handles GET /games/matching, returning active exercises.
func (h *MatchingHandler) List(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.exerciseStore.ListActive(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, exercises)
}

// Get handles GET /games/matching/{id}.
func (h *MatchingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseStore.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, exercise)
}

// Create handles POST /games/matching. Pairs may be supplied inline.
func (h *MatchingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req matchingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid exercise details")
		return
	}

	exercise, err := domain.NewMatchingExercise(req.Title, req.Instructions, req.ExerciseType)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}
	if req.IsActive != nil {
		exercise.IsActive = *req.IsActive
	}

	for _, p := range req.Pairs {
		pair, err := domain.NewMatchingPair(exercise.ID, p.Hanzi, p.Pinyin, p.English)
		if err != nil {
			respondValidationError(w, r, err)
			return
		}
		exercise.Pairs = append(exercise.Pairs, pair)
	}

	if err := h.exerciseStore.Create(r.Context(), exercise); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("matching exercise created", "exercise_id", exercise.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, exercise)
}

// Update handles PUT /games/matching/{id}, replacing the exercise's
// writable fields. Pairs are not modified through this endpoint.
func (h *MatchingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req matchingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid exercise details")
		return
	}

	exercise := &domain.MatchingExercise{
		ID:           id,
		Title:        req.Title,
		Instructions: req.Instructions,
		ExerciseType: req.ExerciseType,
		IsActive:     true,
	}
	if exercise.Instructions == "" {
		exercise.Instructions = "Match the correct pairs"
	}
	if req.IsActive != nil {
		exercise.IsActive = *req.IsActive
	}
	if err := exercise.Validate(); err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.exerciseStore.Update(r.Context(), exercise); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, exercise)
}

// Delete handles DELETE /games/matching/{id}. Pairs are removed by cascade.
func (h *MatchingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.exerciseStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("matching exercise deleted", "exercise_id", id)
	w.WriteHeader(http.StatusNoContent)
}
