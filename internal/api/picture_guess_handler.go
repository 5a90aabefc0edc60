package api

import (
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// PictureGuessHandler handles picture-guess question HTTP requests,
// including the questions' multiple-choice options. Reads are public and
// limited to active questions for the list endpoint; writes require staff
// access.
type PictureGuessHandler struct {
	questionStore store.PictureGuessStore
	logger        *slog.Logger
}

// NewPictureGuessHandler creates a new PictureGuessHandler.
func NewPictureGuessHandler(questionStore store.PictureGuessStore, logger *slog.Logger) *PictureGuessHandler {
	return &PictureGuessHandler{
		questionStore: questionStore,
		logger:        logger.With("component", "picture_guess_handler"),
	}
}

type pictureGuessRequest struct {
	Image        string              `json:"image" validate:"required,max=500"`
	QuestionType domain.QuestionType `json:"question_type" validate:"required,oneof=input multiple_choice"`
	HanziAnswer  string              `json:"hanzi_answer" validate:"required,max=50"`
	Pinyin       string              `json:"pinyin" validate:"max=100"`
	English      string              `json:"english" validate:"max=255"`
	Hint         string              `json:"hint" validate:"max=255"`
	IsActive     *bool               `json:"is_active"`
	Options      []optionRequest     `json:"options" validate:"dive"`
}

type optionRequest struct {
	OptionText string `json:"option_text" validate:"required,max=255"`
	IsCorrect  bool   `json:"is_correct"`
}

// List handles GET /games/picture-guess, returning active questions.
func (h *PictureGuessHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionStore.ListActive(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, questions)
}

// Get handles GET /games/picture-guess/{id}.
func (h *PictureGuessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	question, err := h.questionStore.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, question)
}

// Create handles POST /games/picture-guess. Options may be supplied inline;
// at most one of them may be marked correct.
func (h *PictureGuessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pictureGuessRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question details")
		return
	}

	question, err := domain.NewPictureGuessQuestion(req.Image, req.QuestionType,
		req.HanziAnswer, req.Pinyin, req.English, req.Hint)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	for _, o := range req.Options {
		option, err := domain.NewMultipleChoiceOption(question.ID, o.OptionText, o.IsCorrect)
		if err != nil {
			respondValidationError(w, r, err)
			return
		}
		question.Options = append(question.Options, option)
	}
	if err := question.Validate(); err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.questionStore.Create(r.Context(), question); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("picture guess question created", "question_id", question.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, question)
}

// Update handles PUT /games/picture-guess/{id}, replacing the question's
// writable fields. Options are managed through their own endpoints.
func (h *PictureGuessHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req pictureGuessRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question details")
		return
	}

	question := &domain.PictureGuessQuestion{
		ID:           id,
		Image:        req.Image,
		QuestionType: req.QuestionType,
		HanziAnswer:  req.HanziAnswer,
		Pinyin:       req.Pinyin,
		English:      req.English,
		Hint:         req.Hint,
		IsActive:     true,
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}
	if err := question.Validate(); err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.questionStore.Update(r.Context(), question); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, question)
}

// Delete handles DELETE /games/picture-guess/{id}. Options are removed by
// cascade.
func (h *PictureGuessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.questionStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("picture guess question deleted", "question_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// CreateOption handles POST /games/picture-guess/{id}/options.
func (h *PictureGuessHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req optionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid option details")
		return
	}

	option, err := domain.NewMultipleChoiceOption(questionID, req.OptionText, req.IsCorrect)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.questionStore.CreateOption(r.Context(), option); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, option)
}

// UpdateOption handles PUT /games/picture-guess/{id}/options/{optionID}.
func (h *PictureGuessHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	optionID, ok := parseIDParam(w, r, "optionID")
	if !ok {
		return
	}

	var req optionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid option details")
		return
	}

	option := &domain.MultipleChoiceOption{
		ID:         optionID,
		QuestionID: questionID,
		OptionText: req.OptionText,
		IsCorrect:  req.IsCorrect,
	}
	if err := h.questionStore.UpdateOption(r.Context(), option); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, option)
}

// DeleteOption handles DELETE /games/picture-guess/{id}/options/{optionID}.
func (h *PictureGuessHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	if _, ok := parseIDParam(w, r, "id"); !ok {
		return
	}
	optionID, ok := parseIDParam(w, r, "optionID")
	if !ok {
		return
	}

	if err := h.questionStore.DeleteOption(r.Context(), optionID); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
