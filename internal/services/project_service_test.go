package services

import (
	"context"
	"errors"
	"testing"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

func TestCreateProjectStartsAsDraft(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)

	resp := env.createProject(t, student, "Smart irrigation")

	if resp.Status != models.StatusDraft {
		t.Errorf("new project status = %s, want draft", resp.Status)
	}
	if resp.Project.Department != models.DeptComputerScience {
		t.Errorf("project department = %s, want the student's department", resp.Project.Department)
	}
	if resp.Project.SubmittedBy == nil || *resp.Project.SubmittedBy != student.ID {
		t.Error("project should record the submitting student")
	}
	if !resp.CanEdit || !resp.CanDelete || !resp.CanSubmit {
		t.Error("owner should be able to edit, delete and submit a draft")
	}
}

func TestProfessorCannotCreateProject(t *testing.T) {
	env := newTestEnv(t)
	professor := env.createUser(t, "Asha", models.RoleProfessor, models.DeptComputerScience)

	_, err := env.manager.Project().Create(context.Background(), auth.UserActor(professor), &CreateProjectRequest{
		Title:       "Should fail",
		Description: "Professors do not submit projects.",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Create() error = %v, want ErrForbidden", err)
	}
}

func TestSubmitAssignsSequentialVersions(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	project := env.createProject(t, student, "Versioned project")

	first := env.submit(t, student, project.ID)
	if first.Submission.Version != 1 {
		t.Errorf("first submission version = %d, want 1", first.Submission.Version)
	}
	if first.Project.Status != models.StatusSubmitted {
		t.Errorf("status after submit = %s, want submitted", first.Project.Status)
	}

	// Resubmission after feedback mints the next version.
	second := env.submit(t, student, project.ID)
	if second.Submission.Version != 2 {
		t.Errorf("second submission version = %d, want 2", second.Submission.Version)
	}

	submissions, err := env.manager.Project().ListSubmissions(context.Background(), auth.UserActor(student), project.ID)
	if err != nil {
		t.Fatalf("ListSubmissions() error = %v", err)
	}
	if len(submissions) != 2 {
		t.Fatalf("submission count = %d, want 2", len(submissions))
	}
	if submissions[0].Version != 2 || submissions[1].Version != 1 {
		t.Error("submissions should list newest version first")
	}
}

func TestSubmitRefusedOnceDecided(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	project := env.createProject(t, student, "Decided project")
	env.submit(t, student, project.ID)

	for _, status := range []models.ProjectStatus{models.StatusApproved, models.StatusCompleted} {
		if err := env.repo.Project().UpdateStatus(context.Background(), nil, project.ID, status); err != nil {
			t.Fatalf("failed to force status %s: %v", status, err)
		}
		_, err := env.manager.Project().Submit(context.Background(), auth.UserActor(student), project.ID, &SubmitProjectRequest{})
		if !errors.Is(err, ErrConflict) {
			t.Errorf("Submit() while %s: error = %v, want ErrConflict", status, err)
		}
	}
}

func TestSubmitByNonOwnerRefused(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	other := env.createUser(t, "Meera", models.RoleStudent, models.DeptComputerScience)
	project := env.createProject(t, student, "Owned project")

	_, err := env.manager.Project().Submit(context.Background(), auth.UserActor(other), project.ID, &SubmitProjectRequest{})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Submit() by non-owner: error = %v, want ErrForbidden", err)
	}
}

func TestUpdateStopsAfterApproval(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	project := env.createProject(t, student, "Editable project")

	title := "Renamed while draft"
	_, err := env.manager.Project().Update(context.Background(), auth.UserActor(student), project.ID, &UpdateProjectRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update() on draft: %v", err)
	}

	if err := env.repo.Project().UpdateStatus(context.Background(), nil, project.ID, models.StatusApproved); err != nil {
		t.Fatalf("failed to force approved: %v", err)
	}

	title = "Renamed after approval"
	_, err = env.manager.Project().Update(context.Background(), auth.UserActor(student), project.ID, &UpdateProjectRequest{Title: &title})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Update() on approved: error = %v, want ErrConflict", err)
	}
}

func TestDeleteOnlyDrafts(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	draft := env.createProject(t, student, "Draft to delete")
	submitted := env.createProject(t, student, "Submitted to keep")
	env.submit(t, student, submitted.ID)

	if err := env.manager.Project().Delete(context.Background(), auth.UserActor(student), draft.ID); err != nil {
		t.Fatalf("Delete() on draft: %v", err)
	}
	_, err := env.manager.Project().GetByID(context.Background(), auth.UserActor(student), draft.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted draft should be gone, got %v", err)
	}

	err = env.manager.Project().Delete(context.Background(), auth.UserActor(student), submitted.ID)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Delete() on submitted: error = %v, want ErrConflict", err)
	}
}

func TestHODManagesDepartmentProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	hod := env.createUser(t, "Rao", models.RoleHOD, models.DeptComputerScience)
	otherHOD := env.createUser(t, "Nair", models.RoleHOD, models.DeptElectronics)

	project := env.createProject(t, student, "Department project")
	env.submit(t, student, project.ID)
	if err := env.repo.Project().UpdateStatus(ctx, nil, project.ID, models.StatusApproved); err != nil {
		t.Fatalf("failed to force approved: %v", err)
	}

	// The department HOD edits projects the owner can no longer touch.
	title := "Retitled by the department head"
	if _, err := env.manager.Project().Update(ctx, auth.UserActor(hod), project.ID, &UpdateProjectRequest{Title: &title}); err != nil {
		t.Fatalf("Update() as department HOD: %v", err)
	}

	// But not another department's HOD.
	_, err := env.manager.Project().Update(ctx, auth.UserActor(otherHOD), project.ID, &UpdateProjectRequest{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Update() as foreign HOD: error = %v, want ErrForbidden", err)
	}
	if err := env.manager.Project().Delete(ctx, auth.UserActor(otherHOD), project.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete() as foreign HOD: error = %v, want ErrForbidden", err)
	}

	// Department HODs delete regardless of lifecycle state.
	if err := env.manager.Project().Delete(ctx, auth.UserActor(hod), project.ID); err != nil {
		t.Fatalf("Delete() as department HOD: %v", err)
	}

	// HODs also create department projects directly.
	created, err := env.manager.Project().Create(ctx, auth.UserActor(hod), &CreateProjectRequest{
		Title:       "Department showcase",
		Description: "Created by the department head.",
	})
	if err != nil {
		t.Fatalf("Create() as HOD: %v", err)
	}
	if created.Project.Department != models.DeptComputerScience {
		t.Errorf("HOD project department = %s, want the HOD's own", created.Project.Department)
	}
}

func TestListScopesByRole(t *testing.T) {
	env := newTestEnv(t)
	csStudent := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)
	ecStudent := env.createUser(t, "Meera", models.RoleStudent, models.DeptElectronics)
	csProfessor := env.createUser(t, "Asha", models.RoleProfessor, models.DeptComputerScience)
	director := env.createUser(t, "Iyer", models.RoleDirector, "")

	env.createProject(t, csStudent, "CS project")
	env.createProject(t, ecStudent, "EC project")

	own, err := env.manager.Project().List(context.Background(), auth.UserActor(csStudent), ListOptions{})
	if err != nil {
		t.Fatalf("List() as student: %v", err)
	}
	if len(own.Projects) != 1 || own.Projects[0].Title != "CS project" {
		t.Errorf("student should only see own projects, got %d", len(own.Projects))
	}

	deptView, err := env.manager.Project().List(context.Background(), auth.UserActor(csProfessor), ListOptions{})
	if err != nil {
		t.Fatalf("List() as professor: %v", err)
	}
	if len(deptView.Projects) != 1 || deptView.Projects[0].Department != models.DeptComputerScience {
		t.Errorf("professor should only see department projects, got %d", len(deptView.Projects))
	}

	all, err := env.manager.Project().List(context.Background(), auth.UserActor(director), ListOptions{})
	if err != nil {
		t.Fatalf("List() as director: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("director should see every project, total = %d", all.Total)
	}
}

func TestGuestProjectDepartmentAndNameDefaults(t *testing.T) {
	env := newTestEnv(t)
	guest := auth.Guest()

	// Every project belongs to a department; guests must name one.
	_, err := env.manager.Project().Create(context.Background(), guest, &CreateProjectRequest{
		Title:       "Guest without department",
		Description: "Submitted with no department picked.",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("guest Create() without department: error = %v, want ErrValidationFailed", err)
	}

	// A missing guest name falls back to the anonymous default.
	created, err := env.manager.Project().Create(context.Background(), guest, &CreateProjectRequest{
		Title:       "Unnamed guest project",
		Description: "Submitted without a name.",
		Department:  models.DeptCivil,
	})
	if err != nil {
		t.Fatalf("Create() as guest: %v", err)
	}
	if created.Project.Department != models.DeptCivil {
		t.Errorf("department = %s, want the requested one", created.Project.Department)
	}
	if created.Project.GuestDetails.GuestName != "Anonymous Guest" {
		t.Errorf("guest name = %q, want the anonymous default", created.Project.GuestDetails.GuestName)
	}
}

func TestGuestProjectFlow(t *testing.T) {
	env := newTestEnv(t)
	guest := auth.Guest()

	created, err := env.manager.Project().Create(context.Background(), guest, &CreateProjectRequest{
		Title:       "Guest demo",
		Description: "Submitted without an account.",
		Department:  models.DeptMechanical,
		GuestName:   "Visitor",
		GuestEmail:  "visitor@example.com",
	})
	if err != nil {
		t.Fatalf("Create() as guest: %v", err)
	}
	if !created.Project.IsGuest || created.Project.SubmittedBy != nil {
		t.Error("guest project should be flagged and have no submitter")
	}
	if created.Project.GuestDetails.GuestName != "Visitor" {
		t.Error("guest details should be recorded")
	}

	// A guest token can submit the guest project.
	resp, err := env.manager.Project().Submit(context.Background(), guest, created.ID, &SubmitProjectRequest{Notes: "first cut"})
	if err != nil {
		t.Fatalf("Submit() as guest: %v", err)
	}
	if resp.Submission.SubmittedBy != nil {
		t.Error("guest submission should have no user reference")
	}

	// Students cannot touch guest projects.
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptMechanical)
	_, err = env.manager.Project().Submit(context.Background(), auth.UserActor(student), created.ID, &SubmitProjectRequest{})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("student submitting guest project: error = %v, want ErrForbidden", err)
	}
}
