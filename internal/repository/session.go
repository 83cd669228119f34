package repository

import (
	"context"

	"taskhub/internal/models"

	"gorm.io/gorm"
)

// SessionRepository persists issued bearer tokens. Rows double as the
// revocation ledger: membership, not the signature, decides liveness.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Exists(ctx context.Context, userID uint, token string) (bool, error)
	DeleteByToken(ctx context.Context, userID uint, token string) error
	DeleteAllForUser(ctx context.Context, userID uint) error
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository returns a new SessionRepository implementation.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) Exists(ctx context.Context, userID uint, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ? AND token = ?", userID, token).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, userID uint, token string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.Session{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Session{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
