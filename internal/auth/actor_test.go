package auth

import (
	"testing"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

func userProject(ownerID uint, department models.Department) *models.Project {
	return &models.Project{
		SubmittedBy: &ownerID,
		Department:  department,
	}
}

func TestIsOwner(t *testing.T) {
	student := Actor{ID: 7, Role: models.RoleStudent, Department: models.DeptComputerScience}
	other := Actor{ID: 8, Role: models.RoleStudent, Department: models.DeptComputerScience}
	guest := Guest()

	ownProject := userProject(7, models.DeptComputerScience)
	guestProject := &models.Project{IsGuest: true}

	tests := []struct {
		name    string
		actor   Actor
		project *models.Project
		want    bool
	}{
		{"owner matches", student, ownProject, true},
		{"different student", other, ownProject, false},
		{"guest on user project", guest, ownProject, false},
		{"guest on guest project", guest, guestProject, true},
		{"student on guest project", student, guestProject, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOwner(tt.actor, tt.project); got != tt.want {
				t.Errorf("IsOwner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameDepartment(t *testing.T) {
	project := userProject(1, models.DeptElectronics)

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"professor same dept", Actor{ID: 2, Role: models.RoleProfessor, Department: models.DeptElectronics}, true},
		{"professor other dept", Actor{ID: 2, Role: models.RoleProfessor, Department: models.DeptCivil}, false},
		{"hod same dept", Actor{ID: 3, Role: models.RoleHOD, Department: models.DeptElectronics}, true},
		{"director bypasses scoping", Actor{ID: 4, Role: models.RoleDirector}, true},
		{"guest never passes", Guest(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDepartment(tt.actor, project); got != tt.want {
				t.Errorf("SameDepartment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAssignedProfessor(t *testing.T) {
	professorID := uint(11)
	project := &models.Project{AssignedProfessor: &professorID}

	if !IsAssignedProfessor(Actor{ID: 11, Role: models.RoleProfessor}, project) {
		t.Error("assigned professor should match")
	}
	if IsAssignedProfessor(Actor{ID: 12, Role: models.RoleProfessor}, project) {
		t.Error("other professor should not match")
	}
	if IsAssignedProfessor(Guest(), project) {
		t.Error("guest should not match")
	}
	if IsAssignedProfessor(Actor{ID: 11}, &models.Project{}) {
		t.Error("unassigned project should not match")
	}
}

func TestHasRole(t *testing.T) {
	professor := Actor{ID: 1, Role: models.RoleProfessor}

	if !HasRole(professor, models.RoleProfessor, models.RoleHOD) {
		t.Error("professor should pass professor gate")
	}
	if HasRole(professor, models.RoleDirector) {
		t.Error("professor should not pass director gate")
	}
	if !HasRole(Guest(), models.RoleStudent) {
		t.Error("guests should pass the role gate")
	}
}
