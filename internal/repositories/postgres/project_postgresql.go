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

type ProjectPostgreSQL struct {
	db *gorm.DB
}

func NewProjectPostgreSQL(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectPostgreSQL{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (p *ProjectPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return p.db
}

func (p *ProjectPostgreSQL) Create(ctx context.Context, tx *gorm.DB, project *models.Project) error {
	if err := p.getDB(tx).WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (p *ProjectPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Project, error) {
	var project models.Project
	err := p.getDB(tx).WithContext(ctx).
		Preload("TeamMembers").
		Preload("Submitter").
		Preload("Professor").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (p *ProjectPostgreSQL) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Project, error) {
	db := p.getDB(tx).WithContext(ctx)
	// SQLite serializes writers on its own and rejects FOR UPDATE.
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock project: %w", err)
	}
	return &project, nil
}

func (p *ProjectPostgreSQL) Update(ctx context.Context, tx *gorm.DB, project *models.Project) error {
	result := p.getDB(tx).WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"title":              project.Title,
			"description":        project.Description,
			"deadline":           project.Deadline,
			"github_link":        project.GithubLink,
			"live_link":          project.LiveLink,
			"documentation_link": project.DocumentationLink,
			"updated_at":         project.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", project.ID, repositories.ErrNotFound)
	}
	return nil
}

func (p *ProjectPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ProjectStatus) error {
	result := p.getDB(tx).WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update project status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (p *ProjectPostgreSQL) AssignProfessor(ctx context.Context, tx *gorm.DB, id uint, professorID uint) error {
	result := p.getDB(tx).WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("assigned_professor", professorID)
	if result.Error != nil {
		return fmt.Errorf("failed to assign professor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (p *ProjectPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := p.getDB(tx).WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (p *ProjectPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	query := p.applyFilters(p.getDB(tx).WithContext(ctx).Model(&models.Project{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query = query.Order(orderClause(filters.SortBy, filters.SortOrder))
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var projects []*models.Project
	err := query.
		Preload("TeamMembers").
		Preload("Submitter").
		Preload("Professor").
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

func (p *ProjectPostgreSQL) ReplaceTeamMembers(ctx context.Context, tx *gorm.DB, projectID uint, members []models.TeamMember) error {
	db := p.getDB(tx).WithContext(ctx)

	if err := db.Where("project_id = ?", projectID).Delete(&models.TeamMember{}).Error; err != nil {
		return fmt.Errorf("failed to clear team members: %w", err)
	}
	if len(members) == 0 {
		return nil
	}

	for i := range members {
		members[i].ID = 0
		members[i].ProjectID = projectID
	}
	if err := db.Create(&members).Error; err != nil {
		return fmt.Errorf("failed to create team members: %w", err)
	}
	return nil
}

// applyFilters applies common filters to project queries
func (p *ProjectPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ProjectFilters) *gorm.DB {
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
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
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	return query
}

func orderClause(sortBy, sortOrder string) string {
	switch sortBy {
	case "created_at", "updated_at", "title", "status":
	default:
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
