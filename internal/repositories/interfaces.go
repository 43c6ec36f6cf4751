package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ProjectFilters struct {
	Department        *models.Department    `json:"department"`
	Status            *models.ProjectStatus `json:"status"`
	Statuses          []models.ProjectStatus
	SubmittedBy       *uint  `json:"submitted_by"`
	AssignedProfessor *uint  `json:"assigned_professor"`
	GuestOnly         bool   `json:"guest_only"`
	Search            string `json:"search"`
	Limit             int    `json:"limit"`
	Offset            int    `json:"offset"`
	SortBy            string `json:"sort_by"`    // "created_at", "updated_at", "title", "status"
	SortOrder         string `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Role       *models.UserRole   `json:"role"`
	Department *models.Department `json:"department"`
	Query      string             `json:"query"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type DepartmentCount struct {
	Department models.Department `json:"department"`
	Count      int64             `json:"count"`
}

type DepartmentAverage struct {
	Department models.Department `json:"department"`
	AvgMarks   float64           `json:"avg_marks"`
}

type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
	CountByRole(ctx context.Context, tx *gorm.DB, role models.UserRole, department *models.Department) (int64, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, tx *gorm.DB, project *models.Project) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Project, error)
	// GetByIDForUpdate locks the project row for the duration of the
	// surrounding transaction; used to serialize submission versioning.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Project, error)
	Update(ctx context.Context, tx *gorm.DB, project *models.Project) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ProjectStatus) error
	AssignProfessor(ctx context.Context, tx *gorm.DB, id uint, professorID uint) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters ProjectFilters) ([]*models.Project, int64, error)
	ReplaceTeamMembers(ctx context.Context, tx *gorm.DB, projectID uint, members []models.TeamMember) error
}

type EvaluationRepository interface {
	// Upsert inserts the evaluation or, when a row for the same
	// (project, evaluator) pair exists, overwrites its marks, feedback,
	// criteria and timestamp. Uniqueness rides on the composite index, not
	// on a check-then-insert.
	Upsert(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error
	GetByProjectAndEvaluator(ctx context.Context, tx *gorm.DB, projectID, evaluatorID uint) (*models.Evaluation, error)
	GetByProject(ctx context.Context, tx *gorm.DB, projectID uint) (*models.Evaluation, error)
	ListByEvaluator(ctx context.Context, tx *gorm.DB, evaluatorID uint) ([]*models.Evaluation, error)
	ListByProjects(ctx context.Context, tx *gorm.DB, projectIDs []uint) ([]*models.Evaluation, error)
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error
	CountByEvaluator(ctx context.Context, tx *gorm.DB, evaluatorID uint) (int64, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	// NextVersion returns max(version)+1 for the project. Callers must hold
	// the project row lock to make the read-then-insert safe.
	NextVersion(ctx context.Context, tx *gorm.DB, projectID uint) (int, error)
	ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]*models.Submission, error)
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error
}

type ActivityRepository interface {
	Create(ctx context.Context, tx *gorm.DB, activity *models.GuestActivity) error
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.GuestActivity, error)
}

// AnalyticsRepository serves the read-only aggregate queries. Results are
// recomputed per request; callers may cache them.
type AnalyticsRepository interface {
	CountProjects(ctx context.Context, tx *gorm.DB, filters ProjectFilters) (int64, error)
	CountProjectsByStatus(ctx context.Context, tx *gorm.DB, department *models.Department) (map[models.ProjectStatus]int64, error)
	CountProjectsByDepartment(ctx context.Context, tx *gorm.DB) ([]DepartmentCount, error)
	AverageMarksByDepartment(ctx context.Context, tx *gorm.DB) ([]DepartmentAverage, error)
	MonthlySubmissionTrend(ctx context.Context, tx *gorm.DB, since time.Time) ([]MonthlyCount, error)
	TopEvaluations(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Evaluation, error)
}

// ===== REPOSITORY MANAGER =====

type Repository interface {
	User() UserRepository
	Project() ProjectRepository
	Evaluation() EvaluationRepository
	Submission() SubmissionRepository
	Activity() ActivityRepository
	Analytics() AnalyticsRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}
