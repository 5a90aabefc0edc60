package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// Hand-written mocks for the store interfaces the handler tests exercise.
// Each mock returns canned values; error fields override the happy path.

type mockUserStore struct {
	users     map[uuid.UUID]*domain.User
	createErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

type mockChapterStore struct {
	chapters  []*domain.Chapter
	createErr error
	getErr    error
}

func (m *mockChapterStore) Create(ctx context.Context, chapter *domain.Chapter) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.chapters = append(m.chapters, chapter)
	return nil
}

func (m *mockChapterStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Chapter, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, c := range m.chapters {
		if c.ID == id && c.IsPublished {
			return c, nil
		}
	}
	return nil, store.ErrChapterNotFound
}

func (m *mockChapterStore) ListPublished(ctx context.Context) ([]*domain.Chapter, error) {
	published := make([]*domain.Chapter, 0, len(m.chapters))
	for _, c := range m.chapters {
		if c.IsPublished {
			published = append(published, c)
		}
	}
	return published, nil
}

func (m *mockChapterStore) Update(ctx context.Context, chapter *domain.Chapter) error {
	for i, c := range m.chapters {
		if c.ID == chapter.ID {
			m.chapters[i] = chapter
			return nil
		}
	}
	return store.ErrChapterNotFound
}

func (m *mockChapterStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, c := range m.chapters {
		if c.ID == id {
			m.chapters = append(m.chapters[:i], m.chapters[i+1:]...)
			return nil
		}
	}
	return store.ErrChapterNotFound
}

type mockLessonStore struct {
	lessons   []*domain.Lesson
	createErr error
}

func (m *mockLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.lessons = append(m.lessons, lesson)
	return nil
}

func (m *mockLessonStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	for _, l := range m.lessons {
		if l.ID == id && l.IsPublished {
			return l, nil
		}
	}
	return nil, store.ErrLessonNotFound
}

func (m *mockLessonStore) ListPublished(ctx context.Context) ([]*domain.Lesson, error) {
	published := make([]*domain.Lesson, 0, len(m.lessons))
	for _, l := range m.lessons {
		if l.IsPublished {
			published = append(published, l)
		}
	}
	return published, nil
}

func (m *mockLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	for i, l := range m.lessons {
		if l.ID == lesson.ID {
			m.lessons[i] = lesson
			return nil
		}
	}
	return store.ErrLessonNotFound
}

func (m *mockLessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, l := range m.lessons {
		if l.ID == id {
			m.lessons = append(m.lessons[:i], m.lessons[i+1:]...)
			return nil
		}
	}
	return store.ErrLessonNotFound
}

func (m *mockLessonStore) CreateFlashcard(ctx context.Context, card *domain.Flashcard) error {
	return nil
}

func (m *mockLessonStore) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	return nil
}

type mockPostStore struct {
	posts     []*domain.Post
	createErr error
}

func (m *mockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.posts = append(m.posts, post)
	return nil
}

func (m *mockPostStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	for _, p := range m.posts {
		if p.ID == id && p.IsPublished {
			return p, nil
		}
	}
	return nil, store.ErrPostNotFound
}

func (m *mockPostStore) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	published := make([]*domain.Post, 0, len(m.posts))
	for _, p := range m.posts {
		if p.IsPublished {
			published = append(published, p)
		}
	}
	return published, nil
}

func (m *mockPostStore) Update(ctx context.Context, post *domain.Post) error {
	for i, p := range m.posts {
		if p.ID == post.ID {
			m.posts[i] = post
			return nil
		}
	}
	return store.ErrPostNotFound
}

func (m *mockPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return store.ErrPostNotFound
}

type mockCommentStore struct {
	comments  []*domain.Comment
	createErr error
}

func (m *mockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	for _, c := range m.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrCommentNotFound
}

func (m *mockCommentStore) List(ctx context.Context) ([]*domain.Comment, error) {
	return m.comments, nil
}

func (m *mockCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	for _, c := range m.comments {
		if c.ID == comment.ID {
			c.Body = comment.Body
			return nil
		}
	}
	return store.ErrCommentNotFound
}

func (m *mockCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, c := range m.comments {
		if c.ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return store.ErrCommentNotFound
}

type mockProgressStore struct {
	records   []*domain.LessonProgress
	createErr error
}

func (m *mockProgressStore) Create(ctx context.Context, progress *domain.LessonProgress) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, progress)
	return nil
}

func (m *mockProgressStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.LessonProgress, error) {
	for _, rec := range m.records {
		if rec.ID == id && rec.UserID == userID {
			return rec, nil
		}
	}
	return nil, store.ErrProgressNotFound
}

func (m *mockProgressStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.LessonProgress, error) {
	owned := make([]*domain.LessonProgress, 0)
	for _, rec := range m.records {
		if rec.UserID == userID {
			owned = append(owned, rec)
		}
	}
	return owned, nil
}

func (m *mockProgressStore) UpdateForUser(ctx context.Context, progress *domain.LessonProgress) error {
	for _, rec := range m.records {
		if rec.ID == progress.ID && rec.UserID == progress.UserID {
			rec.Completed = progress.Completed
			rec.Score = progress.Score
			return nil
		}
	}
	return store.ErrProgressNotFound
}

func (m *mockProgressStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	for i, rec := range m.records {
		if rec.ID == id && rec.UserID == userID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return store.ErrProgressNotFound
}

type mockThreadStore struct {
	threads   []*domain.Thread
	messages  []*domain.Message
	createErr error
}

func (m *mockThreadStore) Create(ctx context.Context, thread *domain.Thread) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.threads = append(m.threads, thread)
	return nil
}

func (m *mockThreadStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Thread, error) {
	for _, th := range m.threads {
		if th.ID == id && th.Includes(userID) {
			return th, nil
		}
	}
	return nil, store.ErrThreadNotFound
}

func (m *mockThreadStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Thread, error) {
	owned := make([]*domain.Thread, 0)
	for _, th := range m.threads {
		if th.Includes(userID) {
			owned = append(owned, th)
		}
	}
	return owned, nil
}

func (m *mockThreadStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockThreadStore) ListMessages(ctx context.Context, threadID uuid.UUID) ([]*domain.Message, error) {
	msgs := make([]*domain.Message, 0)
	for _, msg := range m.messages {
		if msg.ThreadID == threadID {
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}

// mockJWTService returns fixed values for handler tests.
type mockJWTService struct {
	token       string
	generateErr error
}

func (m *mockJWTService) GenerateToken(ctx context.Context, claims auth.Claims) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.token, nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}

// authedRequest builds a request carrying the given user's claims, as the
// auth middleware would after validating a token.
func authedRequest(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(shared.WithClaims(r.Context(), &auth.Claims{UserID: userID}))
}

// do routes the request through a throwaway recorder.
func do(handler http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)
	return rr
}
