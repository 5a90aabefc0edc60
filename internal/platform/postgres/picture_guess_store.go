package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// oneCorrectOptionIndex is the partial unique index backing the
// at-most-one-correct-option rule.
const oneCorrectOptionIndex = "multiple_choice_options_one_correct_key"

// PictureGuessStore implements store.PictureGuessStore using a PostgreSQL
// backend.
type PictureGuessStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPictureGuessStore creates a PostgreSQL implementation of
// store.PictureGuessStore.
func NewPictureGuessStore(db store.DBTX, log *slog.Logger) *PictureGuessStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PictureGuessStore{
		db:     db,
		logger: log.With(slog.String("component", "picture_guess_store")),
	}
}

var _ store.PictureGuessStore = (*PictureGuessStore)(nil)

// Create implements store.PictureGuessStore.Create.
func (s *PictureGuessStore) Create(ctx context.Context, question *domain.PictureGuessQuestion) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during create",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return err
	}

	query := `
		INSERT INTO picture_guess_questions (id, image, question_type, hanzi_answer, pinyin, english, hint, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		question.ID,
		question.Image,
		string(question.QuestionType),
		question.HanziAnswer,
		question.Pinyin,
		question.English,
		question.Hint,
		question.IsActive,
		question.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return MapError(err)
	}

	for _, option := range question.Options {
		option.QuestionID = question.ID
		if err := s.insertOption(ctx, option); err != nil {
			return err
		}
	}

	return nil
}

// GetByID implements store.PictureGuessStore.GetByID.
func (s *PictureGuessStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PictureGuessQuestion, error) {
	query := questionSelect + ` WHERE id = $1`
	question, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrQuestionNotFound
		}
		return nil, MapError(err)
	}

	question.Options, err = s.listOptions(ctx, question.ID)
	if err != nil {
		return nil, err
	}

	return question, nil
}

// ListActive implements store.PictureGuessStore.ListActive.
func (s *PictureGuessStore) ListActive(ctx context.Context) ([]*domain.PictureGuessQuestion, error) {
	query := questionSelect + ` WHERE is_active = TRUE ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	questions := []*domain.PictureGuessQuestion{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, MapError(err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, question := range questions {
		question.Options, err = s.listOptions(ctx, question.ID)
		if err != nil {
			return nil, err
		}
	}

	return questions, nil
}

// Update implements store.PictureGuessStore.Update.
func (s *PictureGuessStore) Update(ctx context.Context, question *domain.PictureGuessQuestion) error {
	if err := question.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE picture_guess_questions
		SET image = $2, question_type = $3, hanzi_answer = $4, pinyin = $5, english = $6, hint = $7, is_active = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		question.ID,
		question.Image,
		string(question.QuestionType),
		question.HanziAnswer,
		question.Pinyin,
		question.English,
		question.Hint,
		question.IsActive,
	)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrQuestionNotFound)
}

// Delete implements store.PictureGuessStore.Delete. Options are removed by
// cascade.
func (s *PictureGuessStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM picture_guess_questions WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrQuestionNotFound)
}

// CreateOption implements store.PictureGuessStore.CreateOption. The
// one-correct rule is validated against the question's current options; the
// partial unique index still catches writes that race past the check.
func (s *PictureGuessStore) CreateOption(ctx context.Context, option *domain.MultipleChoiceOption) error {
	siblings, err := s.listOptions(ctx, option.QuestionID)
	if err != nil {
		return err
	}
	if err := option.ValidateAgainst(siblings); err != nil {
		return err
	}

	return s.insertOption(ctx, option)
}

// UpdateOption implements store.PictureGuessStore.UpdateOption.
func (s *PictureGuessStore) UpdateOption(ctx context.Context, option *domain.MultipleChoiceOption) error {
	siblings, err := s.listOptions(ctx, option.QuestionID)
	if err != nil {
		return err
	}
	if err := option.ValidateAgainst(siblings); err != nil {
		return err
	}

	query := `
		UPDATE multiple_choice_options
		SET option_text = $2, is_correct = $3
		WHERE id = $1 AND question_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, option.ID, option.OptionText, option.IsCorrect, option.QuestionID)
	if err != nil {
		if IsUniqueViolation(err, oneCorrectOptionIndex) {
			return domain.ErrDuplicateCorrectOption
		}
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrOptionNotFound)
}

// DeleteOption implements store.PictureGuessStore.DeleteOption.
func (s *PictureGuessStore) DeleteOption(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM multiple_choice_options WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrOptionNotFound)
}

func (s *PictureGuessStore) insertOption(ctx context.Context, option *domain.MultipleChoiceOption) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := option.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO multiple_choice_options (id, question_id, option_text, is_correct)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, option.ID, option.QuestionID, option.OptionText, option.IsCorrect)
	if err != nil {
		if IsUniqueViolation(err, oneCorrectOptionIndex) {
			return domain.ErrDuplicateCorrectOption
		}
		log.Error("failed to create option",
			slog.String("error", err.Error()),
			slog.String("question_id", option.QuestionID.String()))
		return MapError(err)
	}

	return nil
}

func (s *PictureGuessStore) listOptions(ctx context.Context, questionID uuid.UUID) ([]*domain.MultipleChoiceOption, error) {
	query := `
		SELECT id, question_id, option_text, is_correct
		FROM multiple_choice_options
		WHERE question_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	options := []*domain.MultipleChoiceOption{}
	for rows.Next() {
		var option domain.MultipleChoiceOption
		if err := rows.Scan(&option.ID, &option.QuestionID, &option.OptionText, &option.IsCorrect); err != nil {
			return nil, MapError(err)
		}
		options = append(options, &option)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return options, nil
}

const questionSelect = `
	SELECT id, image, question_type, hanzi_answer, pinyin, english, hint, is_active, created_at
	FROM picture_guess_questions`

func scanQuestion(row rowScanner) (*domain.PictureGuessQuestion, error) {
	var question domain.PictureGuessQuestion
	var qt string
	err := row.Scan(
		&question.ID,
		&question.Image,
		&qt,
		&question.HanziAnswer,
		&question.Pinyin,
		&question.English,
		&question.Hint,
		&question.IsActive,
		&question.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	question.QuestionType = domain.QuestionType(qt)
	return &question, nil
}
