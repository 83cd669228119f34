package repository

import (
	"context"
	"errors"
	"fmt"

	"taskhub/internal/models"

	"gorm.io/gorm"
)

// TaskFilter holds the optional list constraints: completed flag, sort
// field/direction, and skip/limit pagination. Zero values mean "no
// constraint"; with no sort, tasks come back in insertion order.
type TaskFilter struct {
	Completed *bool
	SortBy    string
	SortDesc  bool
	Limit     int
	Skip      int
}

// sortableTaskColumns is the whitelist of columns List will order by.
var sortableTaskColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"description": true,
	"completed":   true,
}

// TaskRepository defines persistence operations for tasks. Every lookup is
// owner-scoped: a task belonging to someone else behaves exactly like a
// task that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByOwner(ctx context.Context, ownerID, taskID uint) (*models.Task, error)
	List(ctx context.Context, ownerID uint, filter TaskFilter) ([]models.Task, error)
	UpdateFields(ctx context.Context, ownerID, taskID uint, fields map[string]any) error
	Delete(ctx context.Context, ownerID, taskID uint) error
	CountForOwner(ctx context.Context, ownerID uint) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a new TaskRepository implementation.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *taskRepository) GetByOwner(ctx context.Context, ownerID, taskID uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Task")
		}
		return nil, models.NewInternalError(err)
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, ownerID uint, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	if filter.SortBy != "" {
		if !sortableTaskColumns[filter.SortBy] {
			return nil, models.NewValidationError(fmt.Sprintf("Cannot sort by %q", filter.SortBy))
		}
		direction := "ASC"
		if filter.SortDesc {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.SortBy, direction))
	}
	// Stable tie-break; with no sort this alone yields insertion order.
	query = query.Order("id ASC")

	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) UpdateFields(ctx context.Context, ownerID, taskID uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Task")
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, taskID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&models.Task{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Task")
	}
	return nil
}

func (r *taskRepository) CountForOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
