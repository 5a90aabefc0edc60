package api_test

import (
	"bytes"
	"encoding/json"
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

func progressRouter(records *mockProgressStore) chi.Router {
	handler := api.NewProgressHandler(records, testLogger())
	r := chi.NewRouter()
	r.Get("/progress", handler.List)
	r.Post("/progress", handler.Create)
	r.Get("/progress/{id}", handler.Get)
	r.Put("/progress/{id}", handler.Update)
	r.Delete("/progress/{id}", handler.Delete)
	return r
}

func TestProgressOwnerForcedFromToken(t *testing.T) {
	t.Parallel()

	records := &mockProgressStore{}
	router := progressRouter(records)
	owner := uuid.New()
	other := uuid.New()
	lessonID := uuid.New()

	// The body claims a different user; the token wins.
	body := bytes.NewBufferString(fmt.Sprintf(
		`{"lesson_id":%q,"user_id":%q,"completed":true,"score":95}`, lessonID, other))
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/progress", body), owner)
	rr := do(router, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, records.records, 1)
	assert.Equal(t, owner, records.records[0].UserID)
	assert.Equal(t, 95, records.records[0].Score)
}

func TestProgressDuplicateConflicts(t *testing.T) {
	t.Parallel()

	records := &mockProgressStore{createErr: store.ErrProgressExists}
	router := progressRouter(records)

	body := bytes.NewBufferString(fmt.Sprintf(`{"lesson_id":%q,"score":10}`, uuid.New()))
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/progress", body), uuid.New())
	rr := do(router, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestProgressScopedToOwner(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	record, err := domain.NewLessonProgress(owner, uuid.New(), false, 40)
	require.NoError(t, err)
	records := &mockProgressStore{records: []*domain.LessonProgress{record}}
	router := progressRouter(records)

	t.Run("owner sees the record", func(t *testing.T) {
		t.Parallel()

		req := authedRequest(httptest.NewRequest(http.MethodGet, "/progress/"+record.ID.String(), nil), owner)
		rr := do(router, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("another user gets 404, not 403", func(t *testing.T) {
		t.Parallel()

		req := authedRequest(httptest.NewRequest(http.MethodGet, "/progress/"+record.ID.String(), nil), stranger)
		rr := do(router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("list only returns owned records", func(t *testing.T) {
		t.Parallel()

		req := authedRequest(httptest.NewRequest(http.MethodGet, "/progress", nil), stranger)
		rr := do(router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var got []json.RawMessage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Empty(t, got)
	})
}

func TestProgressUpdateAndDelete(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	record, err := domain.NewLessonProgress(owner, uuid.New(), false, 40)
	require.NoError(t, err)
	records := &mockProgressStore{records: []*domain.LessonProgress{record}}
	router := progressRouter(records)

	body := bytes.NewBufferString(`{"completed":true,"score":88}`)
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/progress/"+record.ID.String(), body), owner)
	rr := do(router, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, record.Completed)
	assert.Equal(t, 88, record.Score)

	t.Run("negative score rejected", func(t *testing.T) {
		body := bytes.NewBufferString(`{"completed":true,"score":-5}`)
		req := authedRequest(httptest.NewRequest(http.MethodPut, "/progress/"+record.ID.String(), body), owner)
		rr := do(router, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodDelete, "/progress/"+record.ID.String(), nil), uuid.New())
		rr := do(router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Len(t, records.records, 1)
	})

	t.Run("owner deletes", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodDelete, "/progress/"+record.ID.String(), nil), owner)
		rr := do(router, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, records.records)
	})
}
