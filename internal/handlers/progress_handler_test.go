package handlers

import (
	"net/http"
	"testing"

	"sendloop-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestRecordProgress_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	token := tokenFor(t, "u-1", "free")
	id := env.createTask(t, token, "Run", 30)

	w := env.do(t, http.MethodPost, "/api/tasks/"+id+"/progress", token, map[string]string{"date": "2024-01-01"})
	require.Equal(t, http.StatusCreated, w.Code)
	var first models.Progress
	decode(t, w, &first)
	require.Equal(t, "2024-01-01", first.Date)

	// Second tap on the same day returns the same entry, no duplicate.
	w = env.do(t, http.MethodPost, "/api/tasks/"+id+"/progress", token, map[string]string{"date": "2024-01-01"})
	require.Equal(t, http.StatusOK, w.Code)
	var second models.Progress
	decode(t, w, &second)
	require.Equal(t, first.ID, second.ID)

	w = env.do(t, http.MethodGet, "/api/tasks/"+id+"/progress", token, nil)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, w, &list)
	require.Equal(t, 1, list.Count)
}

func TestRecordProgress_DefaultsToToday(t *testing.T) {
	env := newTestEnv(t)
	token := tokenFor(t, "u-1", "free")
	id := env.createTask(t, token, "Run", 30)

	w := env.do(t, http.MethodPost, "/api/tasks/"+id+"/progress", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.Progress
	decode(t, w, &entry)
	require.NotEmpty(t, entry.Date)
}

func TestRecordProgress_UnknownTask(t *testing.T) {
	env := newTestEnv(t)
	token := tokenFor(t, "u-1", "free")
	w := env.do(t, http.MethodPost, "/api/tasks/missing/progress", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordProgress_BadDate(t *testing.T) {
	env := newTestEnv(t)
	token := tokenFor(t, "u-1", "free")
	id := env.createTask(t, token, "Run", 30)

	w := env.do(t, http.MethodPost, "/api/tasks/"+id+"/progress", token, map[string]string{"date": "01-2024-01"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProgress_UndoAndNoop(t *testing.T) {
	env := newTestEnv(t)
	token := tokenFor(t, "u-1", "free")
	id := env.createTask(t, token, "Run", 30)

	w := env.do(t, http.MethodPost, "/api/tasks/"+id+"/progress", token, map[string]string{"date": "2024-01-01"})
	require.Equal(t, http.StatusCreated, w.Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/tasks/"+id+"/progress/2024-01-01", token, nil).Code)

	w = env.do(t, http.MethodGet, "/api/tasks/"+id+"/progress", token, nil)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, w, &list)
	require.Zero(t, list.Count)

	// Undoing an absent entry is still a 200 no-op.
	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/tasks/"+id+"/progress/2024-01-01", token, nil).Code)
}
