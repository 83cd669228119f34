package server

import (
	"strings"

	"taskhub/internal/models"
	"taskhub/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CreateTask handles POST /tasks. The owner is always the authenticated
// caller; an owner field in the body is not honored.
func (s *Server) CreateTask(c *fiber.Ctx) error {
	var req struct {
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	task, err := s.taskService.Create(c.UserContext(), authedUserID(c), req.Description, req.Completed)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// ListTasks handles GET /tasks with query parameters:
// completed=true|false, sortBy=field[:desc], limit, skip.
func (s *Server) ListTasks(c *fiber.Ctx) error {
	filter, err := parseTaskFilter(c)
	if err != nil {
		return fail(c, err)
	}

	tasks, err := s.taskService.List(c.UserContext(), authedUserID(c), filter)
	if err != nil {
		return fail(c, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return c.JSON(tasks)
}

// GetTask handles GET /tasks/:id
func (s *Server) GetTask(c *fiber.Ctx) error {
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.Get(c.UserContext(), authedUserID(c), taskID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

// UpdateTask handles PATCH /tasks/:id with wholesale field validation.
func (s *Server) UpdateTask(c *fiber.Ctx) error {
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	task, err := s.taskService.Update(c.UserContext(), authedUserID(c), taskID, fields)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

// DeleteTask handles DELETE /tasks/:id
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taskService.Delete(c.UserContext(), authedUserID(c), taskID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// sortFieldAliases maps the query grammar's camelCase field names onto the
// underlying column names.
var sortFieldAliases = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// parseTaskFilter translates list query parameters into a repository filter.
// sortBy uses the "field:direction" form; "desc" sorts descending and any
// other direction (or none) sorts ascending.
func parseTaskFilter(c *fiber.Ctx) (repository.TaskFilter, error) {
	filter := repository.TaskFilter{}

	if raw := c.Query("completed"); raw != "" {
		switch raw {
		case "true":
			v := true
			filter.Completed = &v
		case "false":
			v := false
			filter.Completed = &v
		default:
			return filter, models.NewValidationError("completed must be true or false")
		}
	}

	if raw := c.Query("sortBy"); raw != "" {
		parts := strings.SplitN(raw, ":", 2)
		field := parts[0]
		if column, ok := sortFieldAliases[field]; ok {
			field = column
		}
		filter.SortBy = field
		if len(parts) == 2 {
			filter.SortDesc = parts[1] == "desc"
		}
	}

	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return filter, models.NewValidationError("limit must not be negative")
	}
	filter.Limit = limit

	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		return filter, models.NewValidationError("skip must not be negative")
	}
	filter.Skip = skip

	return filter, nil
}
