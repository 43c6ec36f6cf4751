package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/cache"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
)

const trendMonths = 6

type analyticsService struct {
	repo        repositories.Repository
	db          *gorm.DB
	logger      *slog.Logger
	cacheHelper *cache.CacheHelper
}

func NewAnalyticsService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, cacheHelper *cache.CacheHelper) AnalyticsService {
	return &analyticsService{
		repo:        repo,
		db:          db,
		logger:      logger,
		cacheHelper: cacheHelper,
	}
}

// DepartmentStats serves the HOD overview of their own department.
func (s *analyticsService) DepartmentStats(ctx context.Context, actor auth.Actor) (*DepartmentStats, error) {
	if actor.IsGuest || actor.Role != models.RoleHOD {
		return nil, NewPermissionError(actor.ID, 0, "department_stats", "read", "only HODs read department stats")
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

	role := models.RoleProfessor
	professors, _, err := s.repo.User().List(ctx, nil, repositories.UserFilters{
		Role:       &role,
		Department: &department,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list department professors: %w", err)
	}

	return &DepartmentStats{
		Department:    department,
		TotalProjects: total,
		StatusCounts:  statusCounts,
		Professors:    professors,
	}, nil
}

// DirectorAnalytics computes the institution-wide aggregates. Results are
// cached briefly; the queries touch every project row.
func (s *analyticsService) DirectorAnalytics(ctx context.Context, actor auth.Actor) (*DirectorAnalytics, error) {
	if actor.IsGuest || actor.Role != models.RoleDirector {
		return nil, NewPermissionError(actor.ID, 0, "analytics", "read", "only directors read analytics")
	}

	var analytics DirectorAnalytics
	err := s.cacheHelper.CacheOrExecute(ctx, "director", &analytics, cache.AnalyticsCacheConfig.TTL, func() (interface{}, error) {
		return s.computeAnalytics(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (s *analyticsService) computeAnalytics(ctx context.Context) (*DirectorAnalytics, error) {
	statusCounts, err := s.repo.Analytics().CountProjectsByStatus(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}

	var total int64
	for _, count := range statusCounts {
		total += count
	}

	departmentCounts, err := s.repo.Analytics().CountProjectsByDepartment(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by department: %w", err)
	}

	averages, err := s.repo.Analytics().AverageMarksByDepartment(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to average marks: %w", err)
	}
	for i := range averages {
		averages[i].AvgMarks = math.Round(averages[i].AvgMarks*10) / 10
	}

	trend, err := s.monthlyTrend(ctx)
	if err != nil {
		return nil, err
	}

	topEvaluations, err := s.repo.Analytics().TopEvaluations(ctx, nil, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list top evaluations: %w", err)
	}

	completionRate := 0
	if total > 0 {
		completionRate = int(math.Round(float64(statusCounts[models.StatusCompleted]) / float64(total) * 100))
	}

	students, err := s.repo.User().CountByRole(ctx, nil, models.RoleStudent, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	professors, err := s.repo.User().CountByRole(ctx, nil, models.RoleProfessor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count professors: %w", err)
	}
	hods, err := s.repo.User().CountByRole(ctx, nil, models.RoleHOD, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count HODs: %w", err)
	}

	return &DirectorAnalytics{
		TotalProjects:        total,
		TotalStudents:        students,
		TotalProfessors:      professors,
		TotalHODs:            hods,
		StatusCounts:         statusCounts,
		DepartmentCounts:     departmentCounts,
		CompletionRate:       completionRate,
		AvgMarksByDepartment: averages,
		MonthlyTrend:         trend,
		TopEvaluations:       topEvaluations,
	}, nil
}

// monthlyTrend returns the trailing six calendar months in ascending order,
// zero-filled for months without projects.
func (s *analyticsService) monthlyTrend(ctx context.Context) ([]MonthlyTrendPoint, error) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(trendMonths - 1), 0)

	counts, err := s.repo.Analytics().MonthlySubmissionTrend(ctx, nil, first)
	if err != nil {
		return nil, fmt.Errorf("failed to read monthly trend: %w", err)
	}

	byMonth := make(map[string]int64, len(counts))
	for _, row := range counts {
		byMonth[fmt.Sprintf("%04d-%02d", row.Year, row.Month)] = row.Count
	}

	trend := make([]MonthlyTrendPoint, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := first.AddDate(0, i, 0)
		key := month.Format("2006-01")
		trend = append(trend, MonthlyTrendPoint{Month: key, Count: byMonth[key]})
	}
	return trend, nil
}

// DepartmentOverviews returns one project/people/completion row per
// department, zero rows included.
func (s *analyticsService) DepartmentOverviews(ctx context.Context, actor auth.Actor) ([]DepartmentOverview, error) {
	if actor.IsGuest || actor.Role != models.RoleDirector {
		return nil, NewPermissionError(actor.ID, 0, "analytics", "read", "only directors read analytics")
	}

	overviews := make([]DepartmentOverview, 0, len(models.Departments))
	for _, department := range models.Departments {
		dept := department
		projects, err := s.repo.Analytics().CountProjects(ctx, nil, repositories.ProjectFilters{Department: &dept})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s projects: %w", dept, err)
		}
		completed := models.StatusCompleted
		done, err := s.repo.Analytics().CountProjects(ctx, nil, repositories.ProjectFilters{Department: &dept, Status: &completed})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s completed projects: %w", dept, err)
		}
		students, err := s.repo.User().CountByRole(ctx, nil, models.RoleStudent, &dept)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s students: %w", dept, err)
		}
		professors, err := s.repo.User().CountByRole(ctx, nil, models.RoleProfessor, &dept)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s professors: %w", dept, err)
		}

		rate := 0
		if projects > 0 {
			rate = int(math.Round(float64(done) / float64(projects) * 100))
		}
		overviews = append(overviews, DepartmentOverview{
			Name:           dept,
			Projects:       projects,
			Students:       students,
			Professors:     professors,
			Completed:      done,
			CompletionRate: rate,
		})
	}
	return overviews, nil
}

// TopProjects returns the highest-marked evaluations with their projects.
func (s *analyticsService) TopProjects(ctx context.Context, actor auth.Actor, limit int) ([]*models.Evaluation, error) {
	if actor.IsGuest || actor.Role != models.RoleDirector {
		return nil, NewPermissionError(actor.ID, 0, "analytics", "read", "only directors read analytics")
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	evaluations, err := s.repo.Analytics().TopEvaluations(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top projects: %w", err)
	}
	return evaluations, nil
}

// ExportAnalyticsReport renders the director analytics as an .xlsx workbook.
func (s *analyticsService) ExportAnalyticsReport(ctx context.Context, actor auth.Actor) ([]byte, string, error) {
	analytics, err := s.DirectorAnalytics(ctx, actor)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Overview"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total projects", analytics.TotalProjects},
		{"Total students", analytics.TotalStudents},
		{"Total professors", analytics.TotalProfessors},
		{"Total HODs", analytics.TotalHODs},
		{"Completion rate (%)", analytics.CompletionRate},
	}
	for _, status := range models.ProjectStatuses {
		rows = append(rows, []interface{}{fmt.Sprintf("Projects %s", status), analytics.StatusCounts[status]})
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write overview sheet: %w", err)
		}
	}

	const deptSheet = "Departments"
	if _, err := f.NewSheet(deptSheet); err != nil {
		return nil, "", fmt.Errorf("failed to create department sheet: %w", err)
	}
	deptRows := [][]interface{}{{"Department", "Projects", "Average marks"}}
	averages := make(map[models.Department]float64, len(analytics.AvgMarksByDepartment))
	for _, avg := range analytics.AvgMarksByDepartment {
		averages[avg.Department] = avg.AvgMarks
	}
	for _, dc := range analytics.DepartmentCounts {
		deptRows = append(deptRows, []interface{}{string(dc.Department), dc.Count, averages[dc.Department]})
	}
	for i, row := range deptRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(deptSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write department sheet: %w", err)
		}
	}

	const trendSheet = "Trend"
	if _, err := f.NewSheet(trendSheet); err != nil {
		return nil, "", fmt.Errorf("failed to create trend sheet: %w", err)
	}
	trendRows := [][]interface{}{{"Month", "Projects"}}
	for _, point := range analytics.MonthlyTrend {
		trendRows = append(trendRows, []interface{}{point.Month, point.Count})
	}
	for i, row := range trendRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(trendSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write trend sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("analytics-%s.xlsx", time.Now().Format("2006-01-02"))
	s.logger.InfoContext(ctx, "analytics report exported", "filename", filename)
	return buf.Bytes(), filename, nil
}
