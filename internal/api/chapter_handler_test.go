package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chapterRouter(chapters *mockChapterStore) chi.Router {
	handler := api.NewChapterHandler(chapters, testLogger())
	r := chi.NewRouter()
	r.Get("/chapters", handler.List)
	r.Post("/chapters", handler.Create)
	r.Get("/chapters/{id}", handler.Get)
	r.Put("/chapters/{id}", handler.Update)
	r.Delete("/chapters/{id}", handler.Delete)
	return r
}

func newChapter(t *testing.T, title string, order int, published bool) *domain.Chapter {
	t.Helper()
	chapter, err := domain.NewChapter(title, "", order, nil)
	require.NoError(t, err)
	chapter.IsPublished = published
	return chapter
}

func TestChapterList(t *testing.T) {
	t.Parallel()

	chapters := &mockChapterStore{chapters: []*domain.Chapter{
		newChapter(t, "Greetings", 1, true),
		newChapter(t, "Numbers", 2, true),
		newChapter(t, "Drafts", 3, false),
	}}
	router := chapterRouter(chapters)

	rr := do(router, httptest.NewRequest(http.MethodGet, "/chapters", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2, "unpublished chapters must stay invisible")
}

func TestChapterGet(t *testing.T) {
	t.Parallel()

	published := newChapter(t, "Greetings", 1, true)
	hidden := newChapter(t, "Drafts", 2, false)
	router := chapterRouter(&mockChapterStore{chapters: []*domain.Chapter{published, hidden}})

	t.Run("published chapter found", func(t *testing.T) {
		t.Parallel()

		rr := do(router, httptest.NewRequest(http.MethodGet, "/chapters/"+published.ID.String(), nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unpublished chapter looks missing", func(t *testing.T) {
		t.Parallel()

		rr := do(router, httptest.NewRequest(http.MethodGet, "/chapters/"+hidden.ID.String(), nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed ID", func(t *testing.T) {
		t.Parallel()

		rr := do(router, httptest.NewRequest(http.MethodGet, "/chapters/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChapterCreate(t *testing.T) {
	t.Parallel()

	t.Run("success records the creator", func(t *testing.T) {
		t.Parallel()

		chapters := &mockChapterStore{}
		router := chapterRouter(chapters)
		creator := uuid.New()

		body := bytes.NewBufferString(`{"title":"Greetings","description":"Basic hellos","order":1}`)
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/chapters", body), creator)
		rr := do(router, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, chapters.chapters, 1)
		created := chapters.chapters[0]
		require.NotNil(t, created.CreatedBy)
		assert.Equal(t, creator, *created.CreatedBy)
		assert.True(t, created.IsPublished, "chapters default to published")
	})

	t.Run("missing title rejected", func(t *testing.T) {
		t.Parallel()

		router := chapterRouter(&mockChapterStore{})
		body := bytes.NewBufferString(`{"order":1}`)
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/chapters", body), uuid.New())
		rr := do(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("negative order rejected", func(t *testing.T) {
		t.Parallel()

		router := chapterRouter(&mockChapterStore{})
		body := bytes.NewBufferString(`{"title":"Greetings","order":-1}`)
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/chapters", body), uuid.New())
		rr := do(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChapterUpdateAndDelete(t *testing.T) {
	t.Parallel()

	existing := newChapter(t, "Greetings", 1, true)
	chapters := &mockChapterStore{chapters: []*domain.Chapter{existing}}
	router := chapterRouter(chapters)

	body := bytes.NewBufferString(`{"title":"Greetings v2","order":1,"is_published":false}`)
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/chapters/"+existing.ID.String(), body), uuid.New())
	rr := do(router, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Greetings v2", chapters.chapters[0].Title)
	assert.False(t, chapters.chapters[0].IsPublished)

	rr = do(router, authedRequest(
		httptest.NewRequest(http.MethodDelete, "/chapters/"+existing.ID.String(), nil), uuid.New()))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, chapters.chapters)

	rr = do(router, authedRequest(
		httptest.NewRequest(http.MethodDelete, "/chapters/"+existing.ID.String(), nil), uuid.New()))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
