package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"taskhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTaskViaAPI(t *testing.T, app *fiber.App, token, description string, completed bool) uint {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/tasks", token, fiber.Map{
		"description": description,
		"completed":   completed,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(float64)
	require.NotZero(t, id)
	return uint(id)
}

func listTasksViaAPI(t *testing.T, app *fiber.App, token, query string) (*http.Response, []map[string]any) {
	t.Helper()
	path := "/tasks"
	if query != "" {
		path += "?" + query
	}
	resp, err := app.Test(jsonRequest(t, http.MethodGet, path, token, nil), -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	var tasks []map[string]any
	require.NoError(t, decodeJSONBody(resp, &tasks))
	return resp, tasks
}

func TestCreateTask(t *testing.T) {
	_, app := newTestServer(t)
	userID, token := signupUser(t, app, "Ann", "ann@example.com", "s3cure!pass")

	resp, body := doJSON(t, app, http.MethodPost, "/tasks", token, fiber.Map{
		"description": "  water plants  ",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "water plants", body["description"])
	assert.Equal(t, false, body["completed"])
	assert.Equal(t, float64(userID), body["owner_id"])
}

func TestCreateTaskRejectsEmptyDescription(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signupUser(t, app, "Ann", "ann@example.com", "s3cure!pass")

	resp, body := doJSON(t, app, http.MethodPost, "/tasks", token, fiber.Map{
		"description": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(body))
}

func TestTaskOwnerScoping(t *testing.T) {
	_, app := newTestServer(t)
	_, annToken := signupUser(t, app, "Ann", "ann@example.com", "s3cure!pass")
	_, bobToken := signupUser(t, app, "Bob", "bob@example.com", "s3cure!pass")

	bobTask := createTaskViaAPI(t, app, bobToken, "bob's secret errand", false)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, fiber.Map{"completed": true}},
		{http.MethodDelete, nil},
	} {
		resp, body := doJSON(t, app, tc.method, fmt.Sprintf("/tasks/%d", bobTask), annToken, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode,
			"%s on another user's task must look like absence", tc.method)
		assert.Equal(t, "NOT_FOUND", errorCode(body))
	}

	// Bob can still see his task untouched.
	resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/tasks/%d", bobTask), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["completed"])
}

func TestListTasksFiltering(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signupUser(t, app, "Ann", "ann@example.com", "s3cure!pass")
	_, otherToken := signupUser(t, app, "Bob", "bob@example.com", "s3cure!pass")

	createTaskViaAPI(t, app, token, "alpha", false)
	createTaskViaAPI(t, app, token, "beta", true)
	createTaskViaAPI(t, app, token, "gamma", false)
	createTaskViaAPI(t, app, otherToken, "not yours", false)

	t.Run("all own tasks", func(t *testing.T) {
		resp, tasks := listTasksViaAPI(t, app, token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, tasks, 3)
	})

	t.Run("completed filter", func(t *testing.T) {
		resp, tasks := listTasksViaAPI(t, app, token, "completed=true")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tasks, 1)
		assert.Equal(t, "beta", tasks[0]["description"])

		resp, tasks = listTasksViaAPI(t, app, token, "completed=false")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, tasks, 2)
	})

	t.Run("invalid completed value", func(t *testing.T) {
		resp, _ := listTasksViaAPI(t, app, token, "completed=maybe")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("sort by completed descending", func(t *testing.T) {
		resp, tasks := listTasksViaAPI(t, app, token, "sortBy=completed:desc")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tasks, 3)
		assert.Equal(t, "beta", tasks[0]["description"], "completed task sorts first")
	})

	t.Run("sort by description", func(t *testing.T) {
		resp, tasks := listTasksViaAPI(t, app, token, "sortBy=description")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tasks, 3)
		assert.Equal(t, "alpha", tasks[0]["description"])
		assert.Equal(t, "gamma", tasks[2]["description"])
	})

	t.Run("unknown sort field", func(t *testing.T) {
		resp, _ := listTasksViaAPI(t, app, token, "sortBy=owner_id")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("pagination window", func(t *testing.T) {
		resp, tasks := listTasksViaAPI(t, app, token, "limit=2&skip=1")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tasks, 2)
		assert.Equal(t, "beta", tasks[0]["description"])
		assert.Equal(t, "gamma", tasks[1]["description"])
	})

	t.Run("skip past the end", func(t *testing.T) {
		resp, tasks := listTasksViaAPI(t, app, token, "skip=10")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("negative limit", func(t *testing.T) {
		resp, _ := listTasksViaAPI(t, app, token, "limit=-1")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListTasksSortByCamelCaseAliases(t *testing.T) {
	s, app := newTestServer(t)
	_, token := signupUser(t, app, "Ann", "ann@example.com", "s3cure!pass")

	oldest := createTaskViaAPI(t, app, token, "oldest", false)
	createTaskViaAPI(t, app, token, "middle", false)
	createTaskViaAPI(t, app, token, "newest", false)

	// Spread creation times so the sort order is observable.
	require.NoError(t, s.db.Model(&models.Task{}).Where("id = ?", oldest).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	resp, tasks := listTasksViaAPI(t, app, token, "sortBy=createdAt:desc")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, tasks, 3)
	assert.Equal(t, "oldest", tasks[2]["description"])

	resp, tasks = listTasksViaAPI(t, app, token, "sortBy=createdAt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, tasks, 3)
	assert.Equal(t, "oldest", tasks[0]["description"])

	resp, tasks = listTasksViaAPI(t, app, token, "sortBy=updatedAt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, tasks, 3)
}

func TestUpdateTask(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signupUser(t, app, "Ann", "ann@example.com", "s3cure!pass")
	taskID := createTaskViaAPI(t, app, token, "draft report", false)

	t.Run("valid update", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/tasks/%d", taskID), token, fiber.Map{
			"description": "final report",
			"completed":   true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "final report", body["description"])
		assert.Equal(t, true, body["completed"])
	})

	t.Run("unknown key rejects whole update", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/tasks/%d", taskID), token, fiber.Map{
			"description": "should not stick",
			"owner_id":    999,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(body))

		_, current := doJSON(t, app, http.MethodGet, fmt.Sprintf("/tasks/%d", taskID), token, nil)
		assert.Equal(t, "final report", current["description"])
	})

	t.Run("missing task", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/tasks/424242", token, fiber.Map{"completed": true})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/tasks/abc", token, fiber.Map{"completed": true})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteTask(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signupUser(t, app, "Ann", "ann@example.com", "s3cure!pass")
	taskID := createTaskViaAPI(t, app, token, "one-off chore", false)

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "second delete finds nothing")
}
