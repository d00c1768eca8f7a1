package repository

import (
	"context"
	"errors"
	"time"

	"github.com/askit4care/careline/pkg/domain"
	"github.com/askit4care/careline/pkg/domain/session"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.Repository {
	return &sessionRepository{
		db: db,
	}
}

func (r *sessionRepository) Get(ctx context.Context, userID string) (*session.Session, error) {
	var entity session.Session
	if err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("session", userID)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *sessionRepository) Upsert(ctx context.Context, userID, threadID string, now time.Time) error {
	entity := session.NewSession(userID, threadID, now)
	// created_date is written on insert only; a conflicting row keeps its
	// original creation timestamp.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"thread_id", "last_interaction"}),
	}).Create(entity).Error
}

func (r *sessionRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&session.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("session", userID)
	}
	return nil
}
