package rest

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodos_CRUDAndOwnership(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	alice := h.registerAndLogin(t, "alice", "secret1")
	bob := h.registerAndLogin(t, "bob", "secret1")

	h.expectTx(3)
	rr := h.do(t, http.MethodPost, "/todos/categories/1/create", alice, map[string]any{
		"title": "write report", "priority": 2, "tags": []string{"q3"}, "user_id": 999,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	first := decode[models.Todo](t, rr)
	assert.NotEqual(t, int64(999), first.UserID)
	assert.Equal(t, 1, *first.Position)

	rr = h.do(t, http.MethodPost, "/todos/categories/1/create", alice, map[string]any{"title": "done thing", "completed": true})
	require.Equal(t, http.StatusCreated, rr.Code)
	second := decode[models.Todo](t, rr)

	rr = h.do(t, http.MethodPost, "/todos/categories/1/create", bob, map[string]any{"title": "bob's"})
	require.Equal(t, http.StatusCreated, rr.Code)
	bobs := decode[models.Todo](t, rr)

	rr = h.do(t, http.MethodGet, "/todos/categories/1", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.Todo](t, rr), 2)

	rr = h.do(t, http.MethodGet, "/todos/categories/1/completed", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	done := decode[[]models.Todo](t, rr)
	require.Len(t, done, 1)
	assert.Equal(t, second.ID, done[0].ID)

	rr = h.do(t, http.MethodGet, "/todos/categories/1/incomplete", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.Todo](t, rr), 1)

	// Another user's todo is indistinguishable from a missing one.
	h.mock.ExpectBegin()
	h.mock.ExpectRollback()
	rr = h.do(t, http.MethodPut, "/todos/categories/1", alice, map[string]any{"id": bobs.ID, "title": "mine now"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = h.do(t, http.MethodDelete, fmt.Sprintf("/todos/%d", bobs.ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	h.expectTx(1)
	rr = h.do(t, http.MethodPut, "/todos/categories/1", alice, map[string]any{"id": first.ID, "title": "final report", "priority": 3})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "final report", decode[models.Todo](t, rr).Title)

	h.expectTx(1)
	rr = h.do(t, http.MethodPut, "/todos/reorder", alice, []int64{second.ID, first.ID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	reordered := decode[[]models.Todo](t, rr)
	require.Len(t, reordered, 2)
	assert.Equal(t, second.ID, reordered[0].ID)
	assert.Equal(t, 1, *reordered[0].Position)

	h.mock.ExpectBegin()
	h.mock.ExpectRollback()
	rr = h.do(t, http.MethodPut, "/todos/reorder", alice, []int64{first.ID, bobs.ID})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = h.do(t, http.MethodDelete, fmt.Sprintf("/todos/%d", first.ID), alice, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestTodos_BadInput(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	alice := h.registerAndLogin(t, "alice", "secret1")

	rr := h.do(t, http.MethodPost, "/todos/categories/abc/create", alice, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = h.do(t, http.MethodPost, "/todos/categories/9/create", alice, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = h.do(t, http.MethodPost, "/todos/categories/1/create", alice, map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = h.do(t, http.MethodPost, "/todos/categories/1/create", alice, map[string]any{"title": "x", "priority": 7})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = h.do(t, http.MethodPost, "/todos/categories/1/create", alice,
		map[string]any{"title": "x", "tags": []string{strings.Repeat("t", 101)}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = h.do(t, http.MethodPut, "/todos/reorder", alice, []int64{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = h.do(t, http.MethodDelete, "/todos/0", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
