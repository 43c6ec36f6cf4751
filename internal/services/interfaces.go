package services

import (
	"context"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
	"github.com/satishkoppanathi/ProjectSphere/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreateProjectRequest = validator.ProjectCreateRequest
type UpdateProjectRequest = validator.ProjectUpdateRequest
type SubmitProjectRequest = validator.SubmitProjectRequest
type EvaluationRequest = validator.EvaluationRequest
type StatusUpdateRequest = validator.StatusUpdateRequest
type AssignProfessorRequest = validator.AssignProfessorRequest
type ActivityLogRequest = validator.ActivityLogRequest

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
	Guest bool         `json:"guest,omitempty"`
}

type ProjectResponse struct {
	*models.Project
	CanEdit    bool               `json:"can_edit"`
	CanDelete  bool               `json:"can_delete"`
	CanSubmit  bool               `json:"can_submit"`
	Evaluation *models.Evaluation `json:"evaluation,omitempty"`
}

type ProjectListResponse struct {
	Projects []*ProjectResponse `json:"projects"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
}

// ListOptions narrows and pages project listings.
type ListOptions struct {
	Status     *models.ProjectStatus
	Department *models.Department
	Search     string
	Page       int
	Size       int
	SortBy     string
	SortOrder  string
}

type SubmitResponse struct {
	Project    *models.Project    `json:"project"`
	Submission *models.Submission `json:"submission"`
}

// RankedEvaluation is one row of a professor's marks-ordered evaluation list.
type RankedEvaluation struct {
	*models.Evaluation
	Rank int `json:"rank"`
}

// ===== DASHBOARD / ANALYTICS DTOs =====

type StudentDashboard struct {
	TotalProjects  int64                          `json:"total_projects"`
	StatusCounts   map[models.ProjectStatus]int64 `json:"status_counts"`
	AverageMarks   float64                        `json:"average_marks"`
	RecentProjects []*models.Project              `json:"recent_projects"`
}

type ProfessorDashboard struct {
	AssignedProjects int64               `json:"assigned_projects"`
	PendingReviews   int64               `json:"pending_reviews"`
	EvaluationsDone  int64               `json:"evaluations_done"`
	RecentProjects   []*models.Project   `json:"recent_projects"`
	Rankings         []*RankedEvaluation `json:"rankings"`
}

type HODDashboard struct {
	Department     models.Department              `json:"department"`
	TotalProjects  int64                          `json:"total_projects"`
	StatusCounts   map[models.ProjectStatus]int64 `json:"status_counts"`
	ProfessorCount int64                          `json:"professor_count"`
	StudentCount   int64                          `json:"student_count"`
	RecentProjects []*models.Project              `json:"recent_projects"`
}

type DirectorDashboard struct {
	Analytics      *DirectorAnalytics `json:"analytics"`
	RecentProjects []*models.Project  `json:"recent_projects"`
}

type MonthlyTrendPoint struct {
	Month string `json:"month"` // "YYYY-MM"
	Count int64  `json:"count"`
}

type DirectorAnalytics struct {
	TotalProjects        int64                            `json:"total_projects"`
	TotalStudents        int64                            `json:"total_students"`
	TotalProfessors      int64                            `json:"total_professors"`
	TotalHODs            int64                            `json:"total_hods"`
	StatusCounts         map[models.ProjectStatus]int64   `json:"status_counts"`
	DepartmentCounts     []repositories.DepartmentCount   `json:"department_counts"`
	CompletionRate       int                              `json:"completion_rate"` // whole percent
	AvgMarksByDepartment []repositories.DepartmentAverage `json:"avg_marks_by_department"`
	MonthlyTrend         []MonthlyTrendPoint              `json:"monthly_trend"`
	TopEvaluations       []*models.Evaluation             `json:"top_evaluations"`
}

// DepartmentOverview is one row of the director's per-department table.
type DepartmentOverview struct {
	Name           models.Department `json:"name"`
	Projects       int64             `json:"projects"`
	Students       int64             `json:"students"`
	Professors     int64             `json:"professors"`
	Completed      int64             `json:"completed"`
	CompletionRate int               `json:"completion_rate"`
}

type DepartmentStats struct {
	Department    models.Department              `json:"department"`
	TotalProjects int64                          `json:"total_projects"`
	StatusCounts  map[models.ProjectStatus]int64 `json:"status_counts"`
	Professors    []*models.User                 `json:"professors"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GuestSession(ctx context.Context) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	ListProfessors(ctx context.Context, actor auth.Actor, department models.Department) ([]*models.User, error)
	ListStudents(ctx context.Context, actor auth.Actor) ([]*models.User, error)
}

type ProjectService interface {
	Create(ctx context.Context, actor auth.Actor, req *CreateProjectRequest) (*ProjectResponse, error)
	GetByID(ctx context.Context, actor auth.Actor, id uint) (*ProjectResponse, error)
	List(ctx context.Context, actor auth.Actor, opts ListOptions) (*ProjectListResponse, error)
	Update(ctx context.Context, actor auth.Actor, id uint, req *UpdateProjectRequest) (*ProjectResponse, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	Submit(ctx context.Context, actor auth.Actor, id uint, req *SubmitProjectRequest) (*SubmitResponse, error)
	ListSubmissions(ctx context.Context, actor auth.Actor, projectID uint) ([]*models.Submission, error)
}

type EvaluationService interface {
	// RecordEvaluation upserts the professor's evaluation and moves the
	// project to under_review in the same transaction.
	RecordEvaluation(ctx context.Context, actor auth.Actor, projectID uint, req *EvaluationRequest) (*models.Evaluation, error)
	GetByProject(ctx context.Context, actor auth.Actor, projectID uint) (*models.Evaluation, error)
	Rankings(ctx context.Context, actor auth.Actor) ([]*RankedEvaluation, error)
	SetStatus(ctx context.Context, actor auth.Actor, projectID uint, req *StatusUpdateRequest) (*models.Project, error)
	AssignProfessor(ctx context.Context, actor auth.Actor, req *AssignProfessorRequest) (*models.Project, error)
}

type DashboardService interface {
	StudentDashboard(ctx context.Context, actor auth.Actor) (*StudentDashboard, error)
	ProfessorDashboard(ctx context.Context, actor auth.Actor) (*ProfessorDashboard, error)
	HODDashboard(ctx context.Context, actor auth.Actor) (*HODDashboard, error)
	DirectorDashboard(ctx context.Context, actor auth.Actor) (*DirectorDashboard, error)
}

type AnalyticsService interface {
	DepartmentStats(ctx context.Context, actor auth.Actor) (*DepartmentStats, error)
	DirectorAnalytics(ctx context.Context, actor auth.Actor) (*DirectorAnalytics, error)
	DepartmentOverviews(ctx context.Context, actor auth.Actor) ([]DepartmentOverview, error)
	TopProjects(ctx context.Context, actor auth.Actor, limit int) ([]*models.Evaluation, error)
	// ExportAnalyticsReport renders the director analytics as an .xlsx
	// workbook and returns its bytes with a suggested filename.
	ExportAnalyticsReport(ctx context.Context, actor auth.Actor) ([]byte, string, error)
}

type ActivityService interface {
	Log(ctx context.Context, req *ActivityLogRequest, ipAddress, userAgent string) error
	ListRecent(ctx context.Context, actor auth.Actor) ([]*models.GuestActivity, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Project() ProjectService
	Evaluation() EvaluationService
	Dashboard() DashboardService
	Analytics() AnalyticsService
	Activity() ActivityService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
