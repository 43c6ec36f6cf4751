package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
)

type ActivityPostgreSQL struct {
	db *gorm.DB
}

func NewActivityPostgreSQL(db *gorm.DB) repositories.ActivityRepository {
	return &ActivityPostgreSQL{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (a *ActivityPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

func (a *ActivityPostgreSQL) Create(ctx context.Context, tx *gorm.DB, activity *models.GuestActivity) error {
	if err := a.getDB(tx).WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create activity record: %w", err)
	}
	return nil
}

func (a *ActivityPostgreSQL) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.GuestActivity, error) {
	var activities []*models.GuestActivity
	err := a.getDB(tx).WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activity records: %w", err)
	}
	return activities, nil
}
