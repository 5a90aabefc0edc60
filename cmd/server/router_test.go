package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/config"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

// Tokens recognized by the stub validator.
const (
	memberToken = "member-token"
	staffToken  = "staff-token"
)

// stubJWTService resolves the two well-known test tokens.
type stubJWTService struct{}

func (s *stubJWTService) GenerateToken(ctx context.Context, claims auth.Claims) (string, error) {
	return memberToken, nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	switch token {
	case memberToken:
		return &auth.Claims{UserID: uuid.New()}, nil
	case staffToken:
		return &auth.Claims{UserID: uuid.New(), IsStaff: true}, nil
	default:
		return nil, auth.ErrInvalidToken
	}
}

// stubPostStore satisfies store.PostStore with empty results.
type stubPostStore struct{}

func (s *stubPostStore) Create(ctx context.Context, post *domain.Post) error { return nil }
func (s *stubPostStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return nil, nil
}
func (s *stubPostStore) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	return []*domain.Post{}, nil
}
func (s *stubPostStore) Update(ctx context.Context, post *domain.Post) error { return nil }
func (s *stubPostStore) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

// stubCommentStore satisfies store.CommentStore with empty results.
type stubCommentStore struct{}

func (s *stubCommentStore) Create(ctx context.Context, comment *domain.Comment) error { return nil }
func (s *stubCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return nil, nil
}
func (s *stubCommentStore) List(ctx context.Context) ([]*domain.Comment, error) {
	return []*domain.Comment{}, nil
}
func (s *stubCommentStore) Update(ctx context.Context, comment *domain.Comment) error { return nil }
func (s *stubCommentStore) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

// stubChapterStore satisfies store.ChapterStore with empty results.
type stubChapterStore struct{}

func (s *stubChapterStore) Create(ctx context.Context, chapter *domain.Chapter) error { return nil }
func (s *stubChapterStore) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Chapter, error) {
	return nil, nil
}
func (s *stubChapterStore) ListPublished(ctx context.Context) ([]*domain.Chapter, error) {
	return []*domain.Chapter{}, nil
}
func (s *stubChapterStore) Update(ctx context.Context, chapter *domain.Chapter) error { return nil }
func (s *stubChapterStore) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func testApplication(t *testing.T) *application {
	t.Helper()
	return &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:     8080,
				LogLevel: "info",
				MediaDir: t.TempDir(),
			},
		},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		jwtService:   &stubJWTService{},
		postStore:    &stubPostStore{},
		commentStore: &stubCommentStore{},
		chapterStore: &stubChapterStore{},
	}
}

// TestRouterAccessTiers pins which resources sit behind which access
// policy: the social feed is members-only for every verb, learning content
// is world-readable with staff-only writes, and per-user resources demand
// authentication.
func TestRouterAccessTiers(t *testing.T) {
	t.Parallel()

	router := testApplication(t).setupRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{
			name:       "anonymous cannot read the feed",
			method:     http.MethodGet,
			path:       "/api/posts",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "member reads the feed",
			method:     http.MethodGet,
			path:       "/api/posts",
			token:      memberToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "member posts to the feed",
			method:     http.MethodPost,
			path:       "/api/posts",
			token:      memberToken,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "anonymous cannot read comments",
			method:     http.MethodGet,
			path:       "/api/comments",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "member comments on the feed",
			method:     http.MethodPost,
			path:       "/api/comments",
			token:      memberToken,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "anonymous reads chapters",
			method:     http.MethodGet,
			path:       "/api/chapters",
			wantStatus: http.StatusOK,
		},
		{
			name:       "member cannot write chapters",
			method:     http.MethodPost,
			path:       "/api/chapters",
			token:      memberToken,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "staff writes chapters",
			method:     http.MethodPost,
			path:       "/api/chapters",
			token:      staffToken,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "anonymous chapter write gets 401",
			method:     http.MethodPost,
			path:       "/api/chapters",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "anonymous cannot read progress",
			method:     http.MethodGet,
			path:       "/api/progress",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "health check is open",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var body io.Reader
			if tt.method == http.MethodPost {
				switch tt.path {
				case "/api/posts":
					body = strings.NewReader(`{"title":"First post","body":"大家好!"}`)
				case "/api/comments":
					body = strings.NewReader(`{"post_id":"` + uuid.NewString() + `","body":"说得好!"}`)
				case "/api/chapters":
					body = strings.NewReader(`{"title":"Greetings","order":1}`)
				}
			}

			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
