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

// LessonStore implements store.LessonStore using a PostgreSQL backend.
type LessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLessonStore creates a PostgreSQL implementation of store.LessonStore.
func NewLessonStore(db store.DBTX, log *slog.Logger) *LessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &LessonStore{
		db:     db,
		logger: log.With(slog.String("component", "lesson_store")),
	}
}

var _ store.LessonStore = (*LessonStore)(nil)

// Create implements store.LessonStore.Create.
func (s *LessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during create",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return err
	}

	query := `
		INSERT INTO lessons (id, chapter_id, title, content, photo, "order", is_published, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		lesson.ID,
		lesson.ChapterID,
		lesson.Title,
		lesson.Content,
		lesson.Photo,
		lesson.Order,
		lesson.IsPublished,
		lesson.CreatedBy,
		lesson.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return MapError(err)
		}
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return MapError(err)
	}

	log.Info("lesson created",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("chapter_id", lesson.ChapterID.String()))
	return nil
}

// GetPublished implements store.LessonStore.GetPublished.
func (s *LessonStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	query := lessonSelect + ` WHERE id = $1 AND is_published = TRUE`
	lesson, err := scanLesson(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLessonNotFound
		}
		return nil, MapError(err)
	}

	if err := loadLessonChildren(ctx, s.db, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// ListPublished implements store.LessonStore.ListPublished.
func (s *LessonStore) ListPublished(ctx context.Context) ([]*domain.Lesson, error) {
	query := lessonSelect + ` WHERE is_published = TRUE ORDER BY "order", created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lessons, err := collectLessons(rows)
	if err != nil {
		return nil, err
	}

	for _, lesson := range lessons {
		if err := loadLessonChildren(ctx, s.db, lesson); err != nil {
			return nil, err
		}
	}

	return lessons, nil
}

// Update implements store.LessonStore.Update.
func (s *LessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE lessons
		SET chapter_id = $2, title = $3, content = $4, photo = $5, "order" = $6, is_published = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		lesson.ID,
		lesson.ChapterID,
		lesson.Title,
		lesson.Content,
		lesson.Photo,
		lesson.Order,
		lesson.IsPublished,
	)
	if err != nil {
		log.Error("failed to update lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrLessonNotFound)
}

// Delete implements store.LessonStore.Delete. Flashcards and quizzes under
// the lesson are removed by cascade.
func (s *LessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrLessonNotFound)
}

// CreateFlashcard implements store.LessonStore.CreateFlashcard.
func (s *LessonStore) CreateFlashcard(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO flashcards (id, lesson_id, hanzi, pinyin, meaning)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, card.ID, card.LessonID, card.Hanzi, card.Pinyin, card.Meaning)
	if err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("lesson_id", card.LessonID.String()))
		return MapError(err)
	}

	return nil
}

// CreateQuiz implements store.LessonStore.CreateQuiz. The answer-letter rule
// is validated in the domain and re-checked by the table's check constraint.
func (s *LessonStore) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := quiz.Validate(); err != nil {
		log.Warn("quiz validation failed during create",
			slog.String("error", err.Error()),
			slog.String("quiz_id", quiz.ID.String()))
		return err
	}

	query := `
		INSERT INTO quizzes (id, lesson_id, question, option_a, option_b, option_c, option_d, correct_answer, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		quiz.ID,
		quiz.LessonID,
		quiz.Question,
		quiz.OptionA,
		quiz.OptionB,
		quiz.OptionC,
		quiz.OptionD,
		quiz.CorrectAnswer,
		quiz.IsActive,
	)
	if err != nil {
		log.Error("failed to create quiz",
			slog.String("error", err.Error()),
			slog.String("lesson_id", quiz.LessonID.String()))
		return MapError(err)
	}

	return nil
}

const lessonSelect = `
	SELECT id, chapter_id, title, content, photo, "order", is_published, created_by, created_at
	FROM lessons`

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var lesson domain.Lesson
	var createdBy uuid.NullUUID
	err := row.Scan(
		&lesson.ID,
		&lesson.ChapterID,
		&lesson.Title,
		&lesson.Content,
		&lesson.Photo,
		&lesson.Order,
		&lesson.IsPublished,
		&createdBy,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		lesson.CreatedBy = &createdBy.UUID
	}
	return &lesson, nil
}

func collectLessons(rows *sql.Rows) ([]*domain.Lesson, error) {
	lessons := []*domain.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, MapError(err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return lessons, nil
}

// listPublishedLessonsByChapter loads a chapter's published lessons with
// flashcards and quizzes embedded. Shared with ChapterStore for nested reads.
func listPublishedLessonsByChapter(ctx context.Context, db store.DBTX, chapterID uuid.UUID) ([]*domain.Lesson, error) {
	query := lessonSelect + ` WHERE chapter_id = $1 AND is_published = TRUE ORDER BY "order", created_at`
	rows, err := db.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lessons, err := collectLessons(rows)
	if err != nil {
		return nil, err
	}

	for _, lesson := range lessons {
		if err := loadLessonChildren(ctx, db, lesson); err != nil {
			return nil, err
		}
	}

	return lessons, nil
}

// loadLessonChildren populates the lesson's flashcards and quizzes.
func loadLessonChildren(ctx context.Context, db store.DBTX, lesson *domain.Lesson) error {
	cards, err := listFlashcardsByLesson(ctx, db, lesson.ID)
	if err != nil {
		return err
	}
	lesson.Flashcards = cards

	quizzes, err := listQuizzesByLesson(ctx, db, lesson.ID)
	if err != nil {
		return err
	}
	lesson.Quizzes = quizzes

	return nil
}

func listFlashcardsByLesson(ctx context.Context, db store.DBTX, lessonID uuid.UUID) ([]*domain.Flashcard, error) {
	query := `
		SELECT id, lesson_id, hanzi, pinyin, meaning
		FROM flashcards
		WHERE lesson_id = $1
	`
	rows, err := db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.ID, &card.LessonID, &card.Hanzi, &card.Pinyin, &card.Meaning); err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

func listQuizzesByLesson(ctx context.Context, db store.DBTX, lessonID uuid.UUID) ([]*domain.Quiz, error) {
	query := `
		SELECT id, lesson_id, question, option_a, option_b, option_c, option_d, correct_answer, is_active
		FROM quizzes
		WHERE lesson_id = $1
	`
	rows, err := db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	quizzes := []*domain.Quiz{}
	for rows.Next() {
		var quiz domain.Quiz
		err := rows.Scan(
			&quiz.ID,
			&quiz.LessonID,
			&quiz.Question,
			&quiz.OptionA,
			&quiz.OptionB,
			&quiz.OptionC,
			&quiz.OptionD,
			&quiz.CorrectAnswer,
			&quiz.IsActive,
		)
		if err != nil {
			return nil, MapError(err)
		}
		quizzes = append(quizzes, &quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return quizzes, nil
}
