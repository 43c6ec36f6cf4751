package services

import (
	"context"
	"errors"
	"testing"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

func TestStudentDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	professor := env.createUser(t, "Asha", models.RoleProfessor, models.DeptComputerScience)

	env.createProject(t, student, "Draft project")
	evaluated := env.createProject(t, student, "Evaluated project")
	env.submit(t, student, evaluated.ID)
	if _, err := env.manager.Evaluation().RecordEvaluation(ctx, auth.UserActor(professor), evaluated.ID, validEvaluation(77)); err != nil {
		t.Fatalf("RecordEvaluation() error = %v", err)
	}

	dashboard, err := env.manager.Dashboard().StudentDashboard(ctx, auth.UserActor(student))
	if err != nil {
		t.Fatalf("StudentDashboard() error = %v", err)
	}

	if dashboard.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, want 2", dashboard.TotalProjects)
	}
	if dashboard.StatusCounts[models.StatusDraft] != 1 || dashboard.StatusCounts[models.StatusUnderReview] != 1 {
		t.Errorf("StatusCounts = %v", dashboard.StatusCounts)
	}
	if dashboard.AverageMarks != 77 {
		t.Errorf("AverageMarks = %v, want 77", dashboard.AverageMarks)
	}
	if len(dashboard.RecentProjects) != 2 {
		t.Errorf("RecentProjects = %d, want 2", len(dashboard.RecentProjects))
	}

	if _, err := env.manager.Dashboard().StudentDashboard(ctx, auth.UserActor(professor)); !errors.Is(err, ErrForbidden) {
		t.Errorf("StudentDashboard() as professor: error = %v, want ErrForbidden", err)
	}
}

func TestProfessorDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	professor := env.createUser(t, "Asha", models.RoleProfessor, models.DeptComputerScience)
	hod := env.createUser(t, "Rao", models.RoleHOD, models.DeptComputerScience)

	evaluated := env.createProject(t, student, "Evaluated project")
	env.submit(t, student, evaluated.ID)
	if _, err := env.manager.Evaluation().RecordEvaluation(ctx, auth.UserActor(professor), evaluated.ID, validEvaluation(88)); err != nil {
		t.Fatalf("RecordEvaluation() error = %v", err)
	}

	pending := env.createProject(t, student, "Waiting project")
	env.submit(t, student, pending.ID)
	if _, err := env.manager.Evaluation().AssignProfessor(ctx, auth.UserActor(hod), &AssignProfessorRequest{
		ProjectID:   pending.ID,
		ProfessorID: professor.ID,
	}); err != nil {
		t.Fatalf("AssignProfessor() error = %v", err)
	}

	dashboard, err := env.manager.Dashboard().ProfessorDashboard(ctx, auth.UserActor(professor))
	if err != nil {
		t.Fatalf("ProfessorDashboard() error = %v", err)
	}

	if dashboard.AssignedProjects != 1 {
		t.Errorf("AssignedProjects = %d, want 1", dashboard.AssignedProjects)
	}
	if dashboard.PendingReviews != 1 {
		t.Errorf("PendingReviews = %d, want 1", dashboard.PendingReviews)
	}
	if dashboard.EvaluationsDone != 1 {
		t.Errorf("EvaluationsDone = %d, want 1", dashboard.EvaluationsDone)
	}
	// The review queue holds both the submitted and the under_review project.
	if len(dashboard.RecentProjects) != 2 {
		t.Errorf("RecentProjects = %d, want 2", len(dashboard.RecentProjects))
	}
	if len(dashboard.Rankings) != 1 || dashboard.Rankings[0].Rank != 1 {
		t.Errorf("Rankings = %v, want the single evaluation at rank 1", dashboard.Rankings)
	}
}

func TestHODDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	env.createUser(t, "Asha", models.RoleProfessor, models.DeptComputerScience)
	env.createUser(t, "Bose", models.RoleProfessor, models.DeptElectronics)
	hod := env.createUser(t, "Rao", models.RoleHOD, models.DeptComputerScience)

	env.createProject(t, student, "CS draft")
	submitted := env.createProject(t, student, "CS submitted")
	env.submit(t, student, submitted.ID)

	dashboard, err := env.manager.Dashboard().HODDashboard(ctx, auth.UserActor(hod))
	if err != nil {
		t.Fatalf("HODDashboard() error = %v", err)
	}

	if dashboard.Department != models.DeptComputerScience {
		t.Errorf("Department = %s, want the HOD's own", dashboard.Department)
	}
	if dashboard.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, want 2", dashboard.TotalProjects)
	}
	if dashboard.ProfessorCount != 1 {
		t.Errorf("ProfessorCount = %d, want 1 (other department excluded)", dashboard.ProfessorCount)
	}
	if dashboard.StudentCount != 1 {
		t.Errorf("StudentCount = %d, want 1", dashboard.StudentCount)
	}
}

func TestDirectorDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	director := env.createUser(t, "Iyer", models.RoleDirector, "")

	env.createProject(t, student, "Any project")

	dashboard, err := env.manager.Dashboard().DirectorDashboard(ctx, auth.UserActor(director))
	if err != nil {
		t.Fatalf("DirectorDashboard() error = %v", err)
	}
	if dashboard.Analytics == nil || dashboard.Analytics.TotalProjects != 1 {
		t.Error("director dashboard should embed the institution analytics")
	}
	if len(dashboard.RecentProjects) != 1 {
		t.Errorf("RecentProjects = %d, want 1", len(dashboard.RecentProjects))
	}

	if _, err := env.manager.Dashboard().DirectorDashboard(ctx, auth.UserActor(student)); !errors.Is(err, ErrForbidden) {
		t.Errorf("DirectorDashboard() as student: error = %v, want ErrForbidden", err)
	}
}
