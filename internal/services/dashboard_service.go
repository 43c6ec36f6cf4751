package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
)

const recentProjectLimit = 10

type dashboardService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	analytics AnalyticsService
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, analytics AnalyticsService) DashboardService {
	return &dashboardService{
		repo:      repo,
		db:        db,
		logger:    logger,
		analytics: analytics,
	}
}

func (s *dashboardService) StudentDashboard(ctx context.Context, actor auth.Actor) (*StudentDashboard, error) {
	if actor.IsGuest || actor.Role != models.RoleStudent {
		return nil, NewPermissionError(actor.ID, 0, "dashboard", "read", "student dashboard is for students")
	}

	ownerID := actor.ID
	projects, total, err := s.repo.Project().List(ctx, nil, repositories.ProjectFilters{
		SubmittedBy: &ownerID,
		Limit:       recentProjectLimit,
		SortBy:      "updated_at",
		SortOrder:   "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list own projects: %w", err)
	}

	statusCounts := make(map[models.ProjectStatus]int64)
	for _, status := range models.ProjectStatuses {
		count, err := s.repo.Analytics().CountProjects(ctx, nil, repositories.ProjectFilters{
			SubmittedBy: &ownerID,
			Status:      statusPtr(status),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to count projects by status: %w", err)
		}
		if count > 0 {
			statusCounts[status] = count
		}
	}

	projectIDs := make([]uint, 0, len(projects))
	recent := make([]*models.Project, 0, len(projects))
	for _, project := range projects {
		projectIDs = append(projectIDs, project.ID)
		recent = append(recent, project)
	}

	evaluations, err := s.repo.Evaluation().ListByProjects(ctx, nil, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	averageMarks := 0.0
	if len(evaluations) > 0 {
		var sum int
		for _, evaluation := range evaluations {
			sum += evaluation.Marks
		}
		averageMarks = math.Round(float64(sum)/float64(len(evaluations))*10) / 10
	}

	return &StudentDashboard{
		TotalProjects:  total,
		StatusCounts:   statusCounts,
		AverageMarks:   averageMarks,
		RecentProjects: recent,
	}, nil
}

func (s *dashboardService) ProfessorDashboard(ctx context.Context, actor auth.Actor) (*ProfessorDashboard, error) {
	if actor.IsGuest || actor.Role != models.RoleProfessor {
		return nil, NewPermissionError(actor.ID, 0, "dashboard", "read", "professor dashboard is for professors")
	}

	professorID := actor.ID
	assigned, err := s.repo.Analytics().CountProjects(ctx, nil, repositories.ProjectFilters{
		AssignedProfessor: &professorID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count assigned projects: %w", err)
	}

	department := actor.Department
	pending, err := s.repo.Analytics().CountProjects(ctx, nil, repositories.ProjectFilters{
		Department: &department,
		Status:     statusPtr(models.StatusSubmitted),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reviews: %w", err)
	}

	evaluationsDone, err := s.repo.Evaluation().CountByEvaluator(ctx, nil, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count evaluations: %w", err)
	}

	projects, _, err := s.repo.Project().List(ctx, nil, repositories.ProjectFilters{
		Department: &department,
		Statuses:   []models.ProjectStatus{models.StatusSubmitted, models.StatusUnderReview},
		Limit:      recentProjectLimit,
		SortBy:     "updated_at",
		SortOrder:  "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list review queue: %w", err)
	}

	evaluations, err := s.repo.Evaluation().ListByEvaluator(ctx, nil, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own evaluations: %w", err)
	}
	rankings := make([]*RankedEvaluation, 0, len(evaluations))
	for i, evaluation := range evaluations {
		rankings = append(rankings, &RankedEvaluation{Evaluation: evaluation, Rank: i + 1})
	}

	return &ProfessorDashboard{
		AssignedProjects: assigned,
		PendingReviews:   pending,
		EvaluationsDone:  evaluationsDone,
		RecentProjects:   projects,
		Rankings:         rankings,
	}, nil
}

func (s *dashboardService) HODDashboard(ctx context.Context, actor auth.Actor) (*HODDashboard, error) {
	if actor.IsGuest || actor.Role != models.RoleHOD {
		return nil, NewPermissionError(actor.ID, 0, "dashboard", "read", "HOD dashboard is for HODs")
	}

	department := actor.Department
	statusCounts, err := s.repo.Analytics().CountProjectsByStatus(ctx, nil, &department)
	if err != nil {
		return nil, fmt.Errorf("failed to count department projects: %w", err)
	}
	var total int64
	for _, count := range statusCounts {
		total += count
	}

	professorCount, err := s.repo.User().CountByRole(ctx, nil, models.RoleProfessor, &department)
	if err != nil {
		return nil, fmt.Errorf("failed to count professors: %w", err)
	}
	studentCount, err := s.repo.User().CountByRole(ctx, nil, models.RoleStudent, &department)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	projects, _, err := s.repo.Project().List(ctx, nil, repositories.ProjectFilters{
		Department: &department,
		Limit:      recentProjectLimit,
		SortBy:     "updated_at",
		SortOrder:  "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list department projects: %w", err)
	}

	return &HODDashboard{
		Department:     department,
		TotalProjects:  total,
		StatusCounts:   statusCounts,
		ProfessorCount: professorCount,
		StudentCount:   studentCount,
		RecentProjects: projects,
	}, nil
}

func (s *dashboardService) DirectorDashboard(ctx context.Context, actor auth.Actor) (*DirectorDashboard, error) {
	analytics, err := s.analytics.DirectorAnalytics(ctx, actor)
	if err != nil {
		return nil, err
	}

	projects, _, err := s.repo.Project().List(ctx, nil, repositories.ProjectFilters{
		Limit:     recentProjectLimit,
		SortBy:    "created_at",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}

	return &DirectorDashboard{
		Analytics:      analytics,
		RecentProjects: projects,
	}, nil
}

func statusPtr(s models.ProjectStatus) *models.ProjectStatus {
	return &s
}
