package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizCorrectAnswer(t *testing.T) {
	t.Parallel()

	lessonID := uuid.New()

	tests := []struct {
		name    string
		correct string
		wantErr error
	}{
		{name: "answer A", correct: "A"},
		{name: "answer B", correct: "B"},
		{name: "answer C", correct: "C"},
		{name: "answer D", correct: "D"},
		{name: "lowercase rejected", correct: "a", wantErr: domain.ErrInvalidCorrectAnswer},
		{name: "out of range rejected", correct: "E", wantErr: domain.ErrInvalidCorrectAnswer},
		{name: "empty rejected", correct: "", wantErr: domain.ErrInvalidCorrectAnswer},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quiz, err := domain.NewQuiz(lessonID, "什么意思?", "cat", "dog", "bird", "fish", tt.correct)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.True(t, quiz.IsActive)
		})
	}
}

func TestQuizJSONNeverExposesCorrectAnswer(t *testing.T) {
	t.Parallel()

	quiz, err := domain.NewQuiz(uuid.New(), "你好 means?", "hello", "goodbye", "thanks", "sorry", "A")
	require.NoError(t, err)

	data, err := json.Marshal(quiz)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "correct_answer")
	assert.Contains(t, fields, "option_a")
}

func TestNewLessonValidation(t *testing.T) {
	t.Parallel()

	creator := uuid.New()

	_, err := domain.NewLesson(uuid.Nil, "Greetings", "content", 0, &creator)
	assert.ErrorIs(t, err, domain.ErrEmptyLessonChapter)

	_, err = domain.NewLesson(uuid.New(), "", "content", 0, &creator)
	assert.ErrorIs(t, err, domain.ErrEmptyLessonTitle)

	_, err = domain.NewLesson(uuid.New(), "Greetings", "content", -1, &creator)
	assert.ErrorIs(t, err, domain.ErrNegativeOrder)

	lesson, err := domain.NewLesson(uuid.New(), "Greetings", "content", 2, nil)
	require.NoError(t, err)
	assert.True(t, lesson.IsPublished)
	assert.Nil(t, lesson.CreatedBy)
}

func TestNewFlashcardValidation(t *testing.T) {
	t.Parallel()

	_, err := domain.NewFlashcard(uuid.New(), "", "nǐ hǎo", "hello")
	assert.ErrorIs(t, err, domain.ErrEmptyFlashcardHanzi)

	card, err := domain.NewFlashcard(uuid.New(), "你好", "nǐ hǎo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "你好", card.Hanzi)
}
