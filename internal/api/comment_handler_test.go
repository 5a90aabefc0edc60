package api_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/api"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentRouter(comments *mockCommentStore) chi.Router {
	handler := api.NewCommentHandler(comments, testLogger())
	r := chi.NewRouter()
	r.Get("/comments", handler.List)
	r.Post("/comments", handler.Create)
	r.Get("/comments/{id}", handler.Get)
	r.Put("/comments/{id}", handler.Update)
	r.Delete("/comments/{id}", handler.Delete)
	return r
}

func TestCommentCreateForcesCommenter(t *testing.T) {
	t.Parallel()

	comments := &mockCommentStore{}
	router := commentRouter(comments)
	commenter := uuid.New()
	postID := uuid.New()

	body := bytes.NewBufferString(fmt.Sprintf(`{"post_id":%q,"body":"说得好!"}`, postID))
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/comments", body), commenter)
	rr := do(router, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, comments.comments, 1)
	assert.Equal(t, commenter, comments.comments[0].CommenterID)
	assert.Equal(t, postID, comments.comments[0].PostID)

	t.Run("empty body rejected", func(t *testing.T) {
		t.Parallel()

		body := bytes.NewBufferString(fmt.Sprintf(`{"post_id":%q}`, postID))
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/comments", body), commenter)
		rr := do(router, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing post reference rejected", func(t *testing.T) {
		t.Parallel()

		router := commentRouter(&mockCommentStore{createErr: store.ErrInvalidEntity})
		body := bytes.NewBufferString(fmt.Sprintf(`{"post_id":%q,"body":"orphan"}`, uuid.New()))
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/comments", body), commenter)
		rr := do(router, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCommentUpdateAndDelete(t *testing.T) {
	t.Parallel()

	existing, err := domain.NewComment(uuid.New(), uuid.New(), "first take")
	require.NoError(t, err)
	comments := &mockCommentStore{comments: []*domain.Comment{existing}}
	router := commentRouter(comments)
	caller := uuid.New()

	body := bytes.NewBufferString(`{"body":"second take"}`)
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/comments/"+existing.ID.String(), body), caller)
	rr := do(router, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "second take", existing.Body)

	rr = do(router, authedRequest(
		httptest.NewRequest(http.MethodDelete, "/comments/"+existing.ID.String(), nil), caller))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, comments.comments)

	rr = do(router, authedRequest(
		httptest.NewRequest(http.MethodGet, "/comments/"+existing.ID.String(), nil), caller))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
