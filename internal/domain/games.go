package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionType distinguishes how a picture-guess question is answered.
type QuestionType string

// Supported picture-guess question types.
const (
	QuestionTypeInput          QuestionType = "input"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

// ExerciseType distinguishes the two matching-exercise variants.
type ExerciseType string

// Supported matching-exercise types.
const (
	ExerciseTypePinyinHanzi  ExerciseType = "pinyin_hanzi"
	ExerciseTypeHanziEnglish ExerciseType = "hanzi_english"
)

// Mini-game validation errors
var (
	ErrEmptyQuestionID     = errors.New("question ID cannot be empty")
	ErrEmptyQuestionImage  = errors.New("question image cannot be empty")
	ErrEmptyHanziAnswer    = errors.New("question hanzi answer cannot be empty")
	ErrInvalidQuestionType = fmt.Errorf("%w: question type must be input or multiple_choice", ErrValidation)

	ErrEmptyOptionID       = errors.New("option ID cannot be empty")
	ErrEmptyOptionQuestion = errors.New("option question ID cannot be empty")
	ErrEmptyOptionText     = errors.New("option text cannot be empty")

	// ErrDuplicateCorrectOption is returned when marking an option correct
	// while another option of the same question is already correct.
	ErrDuplicateCorrectOption = fmt.Errorf("%w: only one correct option allowed per question", ErrValidation)

	ErrEmptyExerciseID     = errors.New("exercise ID cannot be empty")
	ErrEmptyExerciseTitle  = errors.New("exercise title cannot be empty")
	ErrInvalidExerciseType = fmt.Errorf("%w: exercise type must be pinyin_hanzi or hanzi_english", ErrValidation)

	ErrEmptyPairID       = errors.New("pair ID cannot be empty")
	ErrEmptyPairExercise = errors.New("pair exercise ID cannot be empty")
	ErrEmptyPairHanzi    = errors.New("pair hanzi cannot be empty")

	ErrEmptyPuzzleID       = errors.New("puzzle ID cannot be empty")
	ErrEmptyPuzzleSentence = errors.New("puzzle correct sentence cannot be empty")

	ErrEmptyTileID     = errors.New("tile ID cannot be empty")
	ErrEmptyTilePuzzle = errors.New("tile puzzle ID cannot be empty")
	ErrEmptyTileHanzi  = errors.New("tile hanzi cannot be empty")
)

// PictureGuessQuestion is an image-based guessing question. Options are only
// meaningful for the multiple_choice question type and are embedded read-only
// on reads.
type PictureGuessQuestion struct {
	ID           uuid.UUID               `json:"id"`
	Image        string                  `json:"image"` // media path
	QuestionType QuestionType            `json:"question_type"`
	HanziAnswer  string                  `json:"hanzi_answer"`
	Pinyin       string                  `json:"pinyin"`
	English      string                  `json:"english"`
	Hint         string                  `json:"hint"`
	IsActive     bool                    `json:"is_active"`
	CreatedAt    time.Time               `json:"created_at"`
	Options      []*MultipleChoiceOption `json:"options,omitempty"`
}

// NewPictureGuessQuestion creates a picture-guess question.
func NewPictureGuessQuestion(image string, qt QuestionType, hanziAnswer, pinyin, english, hint string) (*PictureGuessQuestion, error) {
	q := &PictureGuessQuestion{
		ID:           uuid.New(),
		Image:        image,
		QuestionType: qt,
		HanziAnswer:  hanziAnswer,
		Pinyin:       pinyin,
		English:      english,
		Hint:         hint,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the PictureGuessQuestion has valid data, including the
// at-most-one-correct-option rule across its embedded options.
func (q *PictureGuessQuestion) Validate() error {
	if q.ID == uuid.Nil {
		return ErrEmptyQuestionID
	}
	if q.Image == "" {
		return ErrEmptyQuestionImage
	}
	if q.HanziAnswer == "" {
		return ErrEmptyHanziAnswer
	}
	switch q.QuestionType {
	case QuestionTypeInput, QuestionTypeMultipleChoice:
	default:
		return ErrInvalidQuestionType
	}

	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct > 1 {
		return ErrDuplicateCorrectOption
	}

	return nil
}

// MultipleChoiceOption is one answer choice of a picture-guess question.
// At most one option per question may be correct; the rule is checked here
// against the question's sibling options and backed by a partial unique
// index at the storage layer.
type MultipleChoiceOption struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	OptionText string    `json:"option_text"`
	IsCorrect  bool      `json:"is_correct"`
}

// NewMultipleChoiceOption creates an option for the given question.
func NewMultipleChoiceOption(questionID uuid.UUID, text string, isCorrect bool) (*MultipleChoiceOption, error) {
	o := &MultipleChoiceOption{
		ID:         uuid.New(),
		QuestionID: questionID,
		OptionText: text,
		IsCorrect:  isCorrect,
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate checks if the MultipleChoiceOption has valid data.
func (o *MultipleChoiceOption) Validate() error {
	if o.ID == uuid.Nil {
		return ErrEmptyOptionID
	}
	if o.QuestionID == uuid.Nil {
		return ErrEmptyOptionQuestion
	}
	if o.OptionText == "" {
		return ErrEmptyOptionText
	}
	return nil
}

// ValidateAgainst enforces the one-correct-option rule against the question's
// existing options, excluding the option itself by identity so updates that
// keep is_correct set do not self-conflict.
func (o *MultipleChoiceOption) ValidateAgainst(siblings []*MultipleChoiceOption) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsCorrect {
		return nil
	}
	for _, s := range siblings {
		if s.ID != o.ID && s.IsCorrect {
			return ErrDuplicateCorrectOption
		}
	}
	return nil
}

// MatchingExercise is a pair-matching mini-game. Pairs are embedded
// read-only on reads.
type MatchingExercise struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Instructions string          `json:"instructions"`
	ExerciseType ExerciseType    `json:"exercise_type"`
	IsActive     bool            `json:"is_active"`
	Pairs        []*MatchingPair `json:"pairs,omitempty"`
}

// NewMatchingExercise creates a matching exercise of the given type.
func NewMatchingExercise(title, instructions string, et ExerciseType) (*MatchingExercise, error) {
	if instructions == "" {
		instructions = "Match the correct pairs"
	}
	e := &MatchingExercise{
		ID:           uuid.New(),
		Title:        title,
		Instructions: instructions,
		ExerciseType: et,
		IsActive:     true,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the MatchingExercise has valid data.
func (e *MatchingExercise) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyExerciseID
	}
	if e.Title == "" {
		return ErrEmptyExerciseTitle
	}
	switch e.ExerciseType {
	case ExerciseTypePinyinHanzi, ExerciseTypeHanziEnglish:
	default:
		return ErrInvalidExerciseType
	}
	return nil
}

// MatchingPair is one hanzi/pinyin/english triple of a matching exercise.
type MatchingPair struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Hanzi      string    `json:"hanzi"`
	Pinyin     string    `json:"pinyin"`
	English    string    `json:"english"`
}

// NewMatchingPair creates a pair for the given exercise.
func NewMatchingPair(exerciseID uuid.UUID, hanzi, pinyin, english string) (*MatchingPair, error) {
	p := &MatchingPair{
		ID:         uuid.New(),
		ExerciseID: exerciseID,
		Hanzi:      hanzi,
		Pinyin:     pinyin,
		English:    english,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the MatchingPair has valid data.
func (p *MatchingPair) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPairID
	}
	if p.ExerciseID == uuid.Nil {
		return ErrEmptyPairExercise
	}
	if p.Hanzi == "" {
		return ErrEmptyPairHanzi
	}
	return nil
}

// SentencePuzzle is a word-ordering mini-game. Tiles are embedded read-only
// on reads, ordered by their tile order.
type SentencePuzzle struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Instruction     string      `json:"instruction"`
	CorrectSentence string      `json:"correct_sentence"`
	Pinyin          string      `json:"pinyin"`
	Translation     string      `json:"translation"`
	IsActive        bool        `json:"is_active"`
	Tiles           []*WordTile `json:"tiles,omitempty"`
}

// NewSentencePuzzle creates a sentence puzzle.
func NewSentencePuzzle(title, instruction, sentence, pinyin, translation string) (*SentencePuzzle, error) {
	if instruction == "" {
		instruction = "Reorder the sentence correctly"
	}
	p := &SentencePuzzle{
		ID:              uuid.New(),
		Title:           title,
		Instruction:     instruction,
		CorrectSentence: sentence,
		Pinyin:          pinyin,
		Translation:     translation,
		IsActive:        true,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the SentencePuzzle has valid data.
func (p *SentencePuzzle) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPuzzleID
	}
	if p.CorrectSentence == "" {
		return ErrEmptyPuzzleSentence
	}
	return nil
}

// WordTile is one draggable tile of a sentence puzzle.
type WordTile struct {
	ID       uuid.UUID `json:"id"`
	PuzzleID uuid.UUID `json:"puzzle_id"`
	Hanzi    string    `json:"hanzi"`
	Order    int       `json:"order"`
}

// NewWordTile creates a tile for the given puzzle.
func NewWordTile(puzzleID uuid.UUID, hanzi string, order int) (*WordTile, error) {
	t := &WordTile{
		ID:       uuid.New(),
		PuzzleID: puzzleID,
		Hanzi:    hanzi,
		Order:    order,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the WordTile has valid data.
func (t *WordTile) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTileID
	}
	if t.PuzzleID == uuid.Nil {
		return ErrEmptyTilePuzzle
	}
	if t.Hanzi == "" {
		return ErrEmptyTileHanzi
	}
	if t.Order < 0 {
		return ErrNegativeOrder
	}
	return nil
}
