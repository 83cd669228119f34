package service

import (
	"context"
	"strings"

	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// TaskService handles owner-scoped task operations. The owner is always
// the authenticated caller; client input never chooses it.
type TaskService struct {
	tasks repository.TaskRepository
}

// allowedTaskFields is the full set of keys a task update may carry.
var allowedTaskFields = map[string]bool{
	"description": true,
	"completed":   true,
}

// NewTaskService returns a new TaskService.
func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create stores a new task owned by ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID uint, description string, completed bool) (*models.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}

	task := &models.Task{
		Description: description,
		Completed:   completed,
		OwnerID:     ownerID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the owner's tasks under the given filter.
func (s *TaskService) List(ctx context.Context, ownerID uint, filter repository.TaskFilter) ([]models.Task, error) {
	return s.tasks.List(ctx, ownerID, filter)
}

// Get returns one task; a task owned by someone else is reported exactly
// like a missing one.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID uint) (*models.Task, error) {
	return s.tasks.GetByOwner(ctx, ownerID, taskID)
}

// Update applies a wholesale-validated field map: only description and
// completed may change, and one unknown key rejects the entire update.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uint, fields map[string]any) (*models.Task, error) {
	if len(fields) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	columns := make(map[string]any, len(fields))
	for key, value := range fields {
		if !allowedTaskFields[key] {
			return nil, models.NewValidationError("Field \"" + key + "\" cannot be updated")
		}

		switch key {
		case "description":
			description, ok := value.(string)
			if !ok {
				return nil, models.NewValidationError("Description must be a string")
			}
			description = strings.TrimSpace(description)
			if description == "" {
				return nil, models.NewValidationError("Description is required")
			}
			columns["description"] = description
		case "completed":
			completed, ok := value.(bool)
			if !ok {
				return nil, models.NewValidationError("Completed must be a boolean")
			}
			columns["completed"] = completed
		}
	}

	if err := s.tasks.UpdateFields(ctx, ownerID, taskID, columns); err != nil {
		return nil, err
	}
	return s.tasks.GetByOwner(ctx, ownerID, taskID)
}

// Delete removes one task if the caller owns it.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uint) error {
	return s.tasks.Delete(ctx, ownerID, taskID)
}
