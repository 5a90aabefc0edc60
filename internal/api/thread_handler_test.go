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

func threadRouter(threads *mockThreadStore) chi.Router {
	handler := api.NewThreadHandler(threads, testLogger())
	r := chi.NewRouter()
	r.Get("/threads", handler.List)
	r.Post("/threads", handler.Create)
	r.Get("/threads/{id}", handler.Get)
	r.Get("/threads/{id}/messages", handler.ListMessages)
	r.Post("/threads/{id}/messages", handler.CreateMessage)
	return r
}

func TestThreadCreate(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	recipient := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		threads := &mockThreadStore{}
		router := threadRouter(threads)

		body := bytes.NewBufferString(fmt.Sprintf(`{"recipient_id":%q}`, recipient))
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/threads", body), caller)
		rr := do(router, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, threads.threads, 1)
		assert.Equal(t, caller, threads.threads[0].User1ID)
		assert.Equal(t, recipient, threads.threads[0].User2ID)
	})

	t.Run("thread with self rejected", func(t *testing.T) {
		t.Parallel()

		router := threadRouter(&mockThreadStore{})
		body := bytes.NewBufferString(fmt.Sprintf(`{"recipient_id":%q}`, caller))
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/threads", body), caller)
		rr := do(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate pair conflicts", func(t *testing.T) {
		t.Parallel()

		router := threadRouter(&mockThreadStore{createErr: store.ErrThreadExists})
		body := bytes.NewBufferString(fmt.Sprintf(`{"recipient_id":%q}`, recipient))
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/threads", body), caller)
		rr := do(router, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestThreadParticipantScoping(t *testing.T) {
	t.Parallel()

	user1 := uuid.New()
	user2 := uuid.New()
	outsider := uuid.New()

	thread, err := domain.NewThread(user1, user2)
	require.NoError(t, err)
	message, err := domain.NewMessage(thread.ID, user1, "你好!")
	require.NoError(t, err)

	threads := &mockThreadStore{
		threads:  []*domain.Thread{thread},
		messages: []*domain.Message{message},
	}
	router := threadRouter(threads)

	t.Run("participant reads messages", func(t *testing.T) {
		req := authedRequest(
			httptest.NewRequest(http.MethodGet, "/threads/"+thread.ID.String()+"/messages", nil), user2)
		rr := do(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got []json.RawMessage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, 1)
	})

	t.Run("outsider gets 404 on the thread", func(t *testing.T) {
		req := authedRequest(
			httptest.NewRequest(http.MethodGet, "/threads/"+thread.ID.String(), nil), outsider)
		rr := do(router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("outsider cannot read messages", func(t *testing.T) {
		req := authedRequest(
			httptest.NewRequest(http.MethodGet, "/threads/"+thread.ID.String()+"/messages", nil), outsider)
		rr := do(router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("outsider cannot post messages", func(t *testing.T) {
		body := bytes.NewBufferString(`{"body":"let me in"}`)
		req := authedRequest(
			httptest.NewRequest(http.MethodPost, "/threads/"+thread.ID.String()+"/messages", body), outsider)
		rr := do(router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("participant posts a message with sender forced", func(t *testing.T) {
		body := bytes.NewBufferString(`{"body":"吃了吗?"}`)
		req := authedRequest(
			httptest.NewRequest(http.MethodPost, "/threads/"+thread.ID.String()+"/messages", body), user2)
		rr := do(router, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		last := threads.messages[len(threads.messages)-1]
		assert.Equal(t, user2, last.SenderID)
		assert.Equal(t, thread.ID, last.ThreadID)
	})
}
