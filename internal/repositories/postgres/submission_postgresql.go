package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (s *SubmissionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	if err := s.getDB(tx).WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// NextVersion reads max(version)+1 under the caller's transaction. The unique
// (project_id, version) index backstops the read if a caller skips the lock.
func (s *SubmissionPostgreSQL) NextVersion(ctx context.Context, tx *gorm.DB, projectID uint) (int, error) {
	var maxVersion int
	err := s.getDB(tx).WithContext(ctx).
		Model(&models.Submission{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read submission version: %w", err)
	}
	return maxVersion + 1, nil
}

func (s *SubmissionPostgreSQL) ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := s.getDB(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("version DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *SubmissionPostgreSQL) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	err := s.getDB(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.Submission{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete project submissions: %w", err)
	}
	return nil
}
