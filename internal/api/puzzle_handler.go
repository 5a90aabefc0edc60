package api

import (
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// PuzzleHandler handles sentence puzzle HTTP requests. Reads are public;
// writes require staff access.
type PuzzleHandler struct {
	puzzleStore store.PuzzleStore
	logger      *slog.Logger
}

// NewPuzzleHandler creates a new PuzzleHandler.
func NewPuzzleHandler(puzzleStore store.PuzzleStore, logger *slog.Logger) *PuzzleHandler {
	return &PuzzleHandler{
		puzzleStore: puzzleStore,
		logger:      logger.With("component", "puzzle_handler"),
	}
}

type puzzleRequest struct {
	Title           string        `json:"title" validate:"max=255"`
	Instruction     string        `json:"instruction" validate:"max=500"`
	CorrectSentence string        `json:"correct_sentence" validate:"required"`
	Pinyin          string        `json:"pinyin"`
	Translation     string        `json:"translation"`
	IsActive        *bool         `json:"is_active"`
	Tiles           []tileRequest `json:"tiles" validate:"dive"`
}

type tileRequest struct {
	Hanzi string `json:"hanzi" validate:"required,max=50"`
	Order int    `json:"order" validate:"min=0"`
}

// List handles GET /games/puzzles, returning active puzzles.
func (h *PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	puzzles, err := h.puzzleStore.ListActive(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, puzzles)
}

// Get handles GET /games/puzzles/{id}.
func (h *PuzzleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	puzzle, err := h.puzzleStore.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, puzzle)
}

// Create handles POST /games/puzzles. Tiles may be supplied inline.
func (h *PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req puzzleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid puzzle details")
		return
	}

	puzzle, err := domain.NewSentencePuzzle(req.Title, req.Instruction,
		req.CorrectSentence, req.Pinyin, req.Translation)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}
	if req.IsActive != nil {
		puzzle.IsActive = *req.IsActive
	}

	for _, t := range req.Tiles {
		tile, err := domain.NewWordTile(puzzle.ID, t.Hanzi, t.Order)
		if err != nil {
			respondValidationError(w, r, err)
			return
		}
		puzzle.Tiles = append(puzzle.Tiles, tile)
	}

	if err := h.puzzleStore.Create(r.Context(), puzzle); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("sentence puzzle created", "puzzle_id", puzzle.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, puzzle)
}

// Update handles PUT /games/puzzles/{id}, replacing the puzzle's writable
// fields. Tiles are not modified through this endpoint.
func (h *PuzzleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req puzzleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid puzzle details")
		return
	}

	puzzle := &domain.SentencePuzzle{
		ID:              id,
		Title:           req.Title,
		Instruction:     req.Instruction,
		CorrectSentence: req.CorrectSentence,
		Pinyin:          req.Pinyin,
		Translation:     req.Translation,
		IsActive:        true,
	}
	if puzzle.Instruction == "" {
		puzzle.Instruction = "Reorder the sentence correctly"
	}
	if req.IsActive != nil {
		puzzle.IsActive = *req.IsActive
	}
	if err := puzzle.Validate(); err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.puzzleStore.Update(r.Context(), puzzle); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, puzzle)
}

// Delete handles DELETE /games/puzzles/{id}. Tiles are removed by cascade.
func (h *PuzzleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.puzzleStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("sentence puzzle deleted", "puzzle_id", id)
	w.WriteHeader(http.StatusNoContent)
}
