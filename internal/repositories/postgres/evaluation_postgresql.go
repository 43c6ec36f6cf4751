package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
)

type EvaluationPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationPostgreSQL(db *gorm.DB) repositories.EvaluationRepository {
	return &EvaluationPostgreSQL{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (e *EvaluationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

// Upsert writes the evaluation through ON CONFLICT on the
// (project_id, evaluator_id) unique index, so concurrent writes for the same
// pair collapse to a single row instead of failing a check-then-insert race.
func (e *EvaluationPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error {
	err := e.getDB(tx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "evaluator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"marks", "feedback",
			"criteria_innovation", "criteria_implementation", "criteria_documentation",
			"criteria_presentation", "criteria_teamwork",
			"evaluated_at",
		}),
	}).Create(evaluation).Error
	if err != nil {
		return fmt.Errorf("failed to upsert evaluation: %w", err)
	}
	return nil
}

func (e *EvaluationPostgreSQL) GetByProjectAndEvaluator(ctx context.Context, tx *gorm.DB, projectID, evaluatorID uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := e.getDB(tx).WithContext(ctx).
		Where("project_id = ? AND evaluator_id = ?", projectID, evaluatorID).
		First(&evaluation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation for project %d by evaluator %d: %w", projectID, evaluatorID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &evaluation, nil
}

func (e *EvaluationPostgreSQL) GetByProject(ctx context.Context, tx *gorm.DB, projectID uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := e.getDB(tx).WithContext(ctx).
		Preload("Evaluator").
		Where("project_id = ?", projectID).
		Order("evaluated_at DESC").
		First(&evaluation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation for project %d: %w", projectID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project evaluation: %w", err)
	}
	return &evaluation, nil
}

func (e *EvaluationPostgreSQL) ListByEvaluator(ctx context.Context, tx *gorm.DB, evaluatorID uint) ([]*models.Evaluation, error) {
	var evaluations []*models.Evaluation
	err := e.getDB(tx).WithContext(ctx).
		Preload("Project").
		Preload("Project.TeamMembers").
		Where("evaluator_id = ?", evaluatorID).
		Order("marks DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations by evaluator: %w", err)
	}
	return evaluations, nil
}

func (e *EvaluationPostgreSQL) ListByProjects(ctx context.Context, tx *gorm.DB, projectIDs []uint) ([]*models.Evaluation, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var evaluations []*models.Evaluation
	err := e.getDB(tx).WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("evaluated_at DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations by projects: %w", err)
	}
	return evaluations, nil
}

func (e *EvaluationPostgreSQL) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	err := e.getDB(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.Evaluation{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete project evaluations: %w", err)
	}
	return nil
}

func (e *EvaluationPostgreSQL) CountByEvaluator(ctx context.Context, tx *gorm.DB, evaluatorID uint) (int64, error) {
	var count int64
	err := e.getDB(tx).WithContext(ctx).
		Model(&models.Evaluation{}).
		Where("evaluator_id = ?", evaluatorID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count evaluations: %w", err)
	}
	return count, nil
}
