package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// LessonHandler handles lesson HTTP requests, including creation of the
// lesson's owned flashcards and quizzes. Quiz responses never carry the
// correct answer.
type LessonHandler struct {
	lessonStore store.LessonStore
	logger      *slog.Logger
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(lessonStore store.LessonStore, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		lessonStore: lessonStore,
		logger:      logger.With("component", "lesson_handler"),
	}
}

type lessonRequest struct {
	ChapterID   string `json:"chapter_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=255"`
	Content     string `json:"content"`
	Photo       string `json:"photo" validate:"max=500"`
	Order       int    `json:"order" validate:"min=0"`
	IsPublished *bool  `json:"is_published"`
}

type flashcardRequest struct {
	Hanzi   string `json:"hanzi" validate:"required,max=50"`
	Pinyin  string `json:"pinyin" validate:"max=100"`
	Meaning string `json:"meaning" validate:"max=255"`
}

type quizRequest struct {
	Question      string `json:"question" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required,oneof=A B C D"`
}

// List handles GET /lessons.
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessonStore.ListPublished(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lessons)
}

// Get handles GET /lessons/{id}.
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	lesson, err := h.lessonStore.GetPublished(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// Create handles POST /lessons.
func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req lessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson details")
		return
	}
	chapterID, err := uuid.Parse(req.ChapterID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid chapter ID")
		return
	}

	lesson, err := domain.NewLesson(chapterID, req.Title, req.Content, req.Order, &userID)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}
	lesson.Photo = req.Photo
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}

	if err := h.lessonStore.Create(r.Context(), lesson); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("lesson created", "lesson_id", lesson.ID, "chapter_id", chapterID)
	shared.RespondWithJSON(w, r, http.StatusCreated, lesson)
}

// Update handles PUT /lessons/{id}, replacing the lesson's writable fields.
func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req lessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson details")
		return
	}
	chapterID, err := uuid.Parse(req.ChapterID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid chapter ID")
		return
	}

	lesson := &domain.Lesson{
		ID:          id,
		ChapterID:   chapterID,
		Title:       req.Title,
		Content:     req.Content,
		Photo:       req.Photo,
		Order:       req.Order,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}
	if err := lesson.Validate(); err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.lessonStore.Update(r.Context(), lesson); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// Delete handles DELETE /lessons/{id}. Flashcards and quizzes under the
// lesson are removed by cascade.
func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.lessonStore.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.logger.Info("lesson deleted", "lesson_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// CreateFlashcard handles POST /lessons/{id}/flashcards.
func (h *LessonHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req flashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard details")
		return
	}

	card, err := domain.NewFlashcard(lessonID, req.Hanzi, req.Pinyin, req.Meaning)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.lessonStore.CreateFlashcard(r.Context(), card); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// CreateQuiz handles POST /lessons/{id}/quizzes. The correct answer is
// accepted on input but never echoed back.
func (h *LessonHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req quizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid quiz details")
		return
	}

	quiz, err := domain.NewQuiz(lessonID, req.Question,
		req.OptionA, req.OptionB, req.OptionC, req.OptionD, req.CorrectAnswer)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if err := h.lessonStore.CreateQuiz(r.Context(), quiz); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, quiz)
}
