package service

import (
	"context"
	"encoding/json"
	"testing"

	"taskhub/internal/models"
	"taskhub/internal/repository"

	"github.com/stretchr/testify/require"
)

func marshalJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// userRepoStub implements repository.UserRepository with overridable
// function fields.
type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFieldsFn  func(ctx context.Context, id uint, fields map[string]any) error
	deleteCascadeFn func(ctx context.Context, id uint) error
	getAvatarFn     func(ctx context.Context, id uint) ([]byte, error)
	setAvatarFn     func(ctx context.Context, id uint, avatar []byte) error
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, nil
		},
		createFn: func(_ context.Context, user *models.User) error {
			user.ID = 1
			return nil
		},
		updateFieldsFn:  func(context.Context, uint, map[string]any) error { return nil },
		deleteCascadeFn: func(context.Context, uint) error { return nil },
		getAvatarFn:     func(context.Context, uint) ([]byte, error) { return nil, models.NewNotFoundError("Avatar") },
		setAvatarFn:     func(context.Context, uint, []byte) error { return nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return s.updateFieldsFn(ctx, id, fields)
}

func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}

func (s *userRepoStub) GetAvatar(ctx context.Context, id uint) ([]byte, error) {
	return s.getAvatarFn(ctx, id)
}

func (s *userRepoStub) SetAvatar(ctx context.Context, id uint, avatar []byte) error {
	return s.setAvatarFn(ctx, id, avatar)
}

// taskRepoStub implements repository.TaskRepository.
type taskRepoStub struct {
	createFn        func(ctx context.Context, task *models.Task) error
	getByOwnerFn    func(ctx context.Context, ownerID, taskID uint) (*models.Task, error)
	listFn          func(ctx context.Context, ownerID uint, filter repository.TaskFilter) ([]models.Task, error)
	updateFieldsFn  func(ctx context.Context, ownerID, taskID uint, fields map[string]any) error
	deleteFn        func(ctx context.Context, ownerID, taskID uint) error
	countForOwnerFn func(ctx context.Context, ownerID uint) (int64, error)
}

func noopTaskRepo() *taskRepoStub {
	return &taskRepoStub{
		createFn: func(_ context.Context, task *models.Task) error {
			task.ID = 1
			return nil
		},
		getByOwnerFn: func(_ context.Context, ownerID, taskID uint) (*models.Task, error) {
			return &models.Task{ID: taskID, OwnerID: ownerID}, nil
		},
		listFn: func(context.Context, uint, repository.TaskFilter) ([]models.Task, error) {
			return nil, nil
		},
		updateFieldsFn:  func(context.Context, uint, uint, map[string]any) error { return nil },
		deleteFn:        func(context.Context, uint, uint) error { return nil },
		countForOwnerFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func (s *taskRepoStub) Create(ctx context.Context, task *models.Task) error {
	return s.createFn(ctx, task)
}

func (s *taskRepoStub) GetByOwner(ctx context.Context, ownerID, taskID uint) (*models.Task, error) {
	return s.getByOwnerFn(ctx, ownerID, taskID)
}

func (s *taskRepoStub) List(ctx context.Context, ownerID uint, filter repository.TaskFilter) ([]models.Task, error) {
	return s.listFn(ctx, ownerID, filter)
}

func (s *taskRepoStub) UpdateFields(ctx context.Context, ownerID, taskID uint, fields map[string]any) error {
	return s.updateFieldsFn(ctx, ownerID, taskID, fields)
}

func (s *taskRepoStub) Delete(ctx context.Context, ownerID, taskID uint) error {
	return s.deleteFn(ctx, ownerID, taskID)
}

func (s *taskRepoStub) CountForOwner(ctx context.Context, ownerID uint) (int64, error) {
	return s.countForOwnerFn(ctx, ownerID)
}

// tokenIssuerStub implements TokenIssuer.
type tokenIssuerStub struct {
	issueFn func(ctx context.Context, userID uint) (string, error)
}

func staticIssuer(token string) *tokenIssuerStub {
	return &tokenIssuerStub{
		issueFn: func(context.Context, uint) (string, error) { return token, nil },
	}
}

func (s *tokenIssuerStub) Issue(ctx context.Context, userID uint) (string, error) {
	return s.issueFn(ctx, userID)
}
