package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/auth"
	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/storage/sqlite"
)

// newTestServer spins up the full engine on an in-memory database with two
// registered accounts.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.CreateUser(ctx, "alice@example.com", hash, "Alice")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "bob@example.com", hash, "Bob")
	require.NoError(t, err)

	tokens := auth.NewJWTManager("test-secret", time.Hour)
	return New(store, logger, tokens, "")
}

func do(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server, email string) string {
	t.Helper()

	rec := do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func tomorrowISO() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	t.Run("wrong password", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "ghost@example.com", "password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid credentials", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.Equal(t, "Alice", resp.Name)
	})
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/projects", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/projects", "", map[string]string{"title": "X"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProjectTaskProgressFlow(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice@example.com")

	// Create a project: starts with no tasks and zero progress.
	rec := do(t, srv, http.MethodPost, "/api/projects", token, map[string]string{
		"title": "Launch", "description": "Release checklist",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var project struct {
		ID                 int64   `json:"id"`
		Title              string  `json:"title"`
		TotalTasks         int     `json:"totalTasks"`
		CompletedTasks     int     `json:"completedTasks"`
		ProgressPercentage float64 `json:"progressPercentage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	assert.Equal(t, "Launch", project.Title)
	assert.Equal(t, 0, project.TotalTasks)
	assert.Equal(t, 0.0, project.ProgressPercentage)

	// Add a task due tomorrow.
	rec = do(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), token, map[string]string{
		"title": "Write spec", "dueDate": tomorrowISO(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var task struct {
		ID        int64  `json:"id"`
		Completed bool   `json:"completed"`
		DueDate   string `json:"dueDate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.False(t, task.Completed)
	assert.Equal(t, tomorrowISO(), task.DueDate)

	// Toggle it to completed.
	rec = do(t, srv, http.MethodPatch, fmt.Sprintf("/api/projects/%d/tasks/%d/toggle", project.ID, task.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.True(t, task.Completed)

	// Progress now reports a fully completed project.
	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/api/projects/%d/progress", project.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	assert.Equal(t, 1, project.TotalTasks)
	assert.Equal(t, 1, project.CompletedTasks)
	assert.Equal(t, 100.0, project.ProgressPercentage)
}

func TestTaskValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice@example.com")

	rec := do(t, srv, http.MethodPost, "/api/projects", token, map[string]string{"title": "Launch"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var project struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	rec = do(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), token, map[string]string{
		"title": "Too late", "dueDate": yesterday,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), token, map[string]string{
		"title": "", "dueDate": tomorrowISO(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), token, map[string]string{
		"title": "Bad date", "dueDate": "next tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	aliceToken := login(t, srv, "alice@example.com")
	bobToken := login(t, srv, "bob@example.com")

	rec := do(t, srv, http.MethodPost, "/api/projects", aliceToken, map[string]string{"title": "Secret"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var project struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))

	rec = do(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), aliceToken, map[string]string{
		"title": "Hidden task", "dueDate": tomorrowISO(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var task struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))

	// Bob sees 404 everywhere, never 403.
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID)},
		{http.MethodGet, fmt.Sprintf("/api/projects/%d/progress", project.ID)},
		{http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", project.ID)},
		{http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID)},
		{http.MethodPatch, fmt.Sprintf("/api/projects/%d/tasks/%d/toggle", project.ID, task.ID)},
		{http.MethodDelete, fmt.Sprintf("/api/projects/%d/tasks/%d", project.ID, task.ID)},
	}
	for _, p := range paths {
		rec := do(t, srv, p.method, p.path, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", p.method, p.path)
	}

	// Bob's project list does not include Alice's project.
	rec = do(t, srv, http.MethodGet, "/api/projects", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projects))
	assert.Empty(t, projects)
}

func TestDeleteProjectRemovesTasks(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice@example.com")

	rec := do(t, srv, http.MethodPost, "/api/projects", token, map[string]string{"title": "Doomed"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var project struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))

	rec = do(t, srv, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), token, map[string]string{
		"title": "Orphan candidate", "dueDate": tomorrowISO(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var task struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))

	rec = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPatch, fmt.Sprintf("/api/projects/%d/tasks/%d/toggle", project.ID, task.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
