package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
)

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsPostgreSQL(db *gorm.DB) repositories.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *analyticsRepository) CountProjects(ctx context.Context, tx *gorm.DB, filters repositories.ProjectFilters) (int64, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.Project{})

	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.SubmittedBy != nil {
		query = query.Where("submitted_by = ?", *filters.SubmittedBy)
	}
	if filters.AssignedProfessor != nil {
		query = query.Where("assigned_professor = ?", *filters.AssignedProfessor)
	}
	if filters.GuestOnly {
		query = query.Where("is_guest = ?", true)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

func (r *analyticsRepository) CountProjectsByStatus(ctx context.Context, tx *gorm.DB, department *models.Department) (map[models.ProjectStatus]int64, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.Project{})
	if department != nil {
		query = query.Where("department = ?", *department)
	}

	var rows []struct {
		Status models.ProjectStatus
		Count  int64
	}
	err := query.
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}

	counts := make(map[models.ProjectStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *analyticsRepository) CountProjectsByDepartment(ctx context.Context, tx *gorm.DB) ([]repositories.DepartmentCount, error) {
	var rows []repositories.DepartmentCount
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Project{}).
		Select("department, COUNT(*) AS count").
		Where("department <> ''").
		Group("department").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by department: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) AverageMarksByDepartment(ctx context.Context, tx *gorm.DB) ([]repositories.DepartmentAverage, error) {
	var rows []repositories.DepartmentAverage
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Evaluation{}).
		Select("projects.department AS department, AVG(evaluations.marks) AS avg_marks").
		Joins("JOIN projects ON projects.id = evaluations.project_id").
		Where("projects.department <> ''").
		Group("projects.department").
		Order("avg_marks DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average marks by department: %w", err)
	}
	return rows, nil
}

// MonthlySubmissionTrend buckets project creation dates by calendar month.
// Bucketing happens in Go to keep the query portable across dialects.
func (r *analyticsRepository) MonthlySubmissionTrend(ctx context.Context, tx *gorm.DB, since time.Time) ([]repositories.MonthlyCount, error) {
	var createdAts []time.Time
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Project{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read submission trend: %w", err)
	}

	type bucket struct{ year, month int }
	counts := make(map[bucket]int64)
	var order []bucket
	for _, ts := range createdAts {
		b := bucket{ts.Year(), int(ts.Month())}
		if _, seen := counts[b]; !seen {
			order = append(order, b)
		}
		counts[b]++
	}

	trend := make([]repositories.MonthlyCount, 0, len(order))
	for _, b := range order {
		trend = append(trend, repositories.MonthlyCount{
			Year:  b.year,
			Month: b.month,
			Count: counts[b],
		})
	}
	return trend, nil
}

func (r *analyticsRepository) TopEvaluations(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Evaluation, error) {
	var evaluations []*models.Evaluation
	err := r.getDB(tx).WithContext(ctx).
		Preload("Project").
		Preload("Evaluator").
		Order("marks DESC").
		Limit(limit).
		Find(&evaluations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list top evaluations: %w", err)
	}
	return evaluations, nil
}
