package validator

import (
	"strings"
	"testing"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid student",
			req: RegisterRequest{
				Name:       "Ravi Kumar",
				Email:      "ravi@example.edu",
				Password:   "secret1",
				Role:       models.RoleStudent,
				Department: models.DeptComputerScience,
			},
		},
		{
			name: "short password",
			req: RegisterRequest{
				Name:       "Ravi Kumar",
				Email:      "ravi@example.edu",
				Password:   "abc",
				Role:       models.RoleStudent,
				Department: models.DeptComputerScience,
			},
			wantErr: true,
		},
		{
			name: "bad email",
			req: RegisterRequest{
				Name:       "Ravi Kumar",
				Email:      "not-an-email",
				Password:   "secret1",
				Role:       models.RoleStudent,
				Department: models.DeptComputerScience,
			},
			wantErr: true,
		},
		{
			name: "unknown role",
			req: RegisterRequest{
				Name:       "Ravi Kumar",
				Email:      "ravi@example.edu",
				Password:   "secret1",
				Role:       "dean",
				Department: models.DeptComputerScience,
			},
			wantErr: true,
		},
		{
			name: "unknown department",
			req: RegisterRequest{
				Name:       "Ravi Kumar",
				Email:      "ravi@example.edu",
				Password:   "secret1",
				Role:       models.RoleStudent,
				Department: "Astrology",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectTitle(t *testing.T) {
	v := New()

	base := ProjectCreateRequest{Description: "A working prototype."}

	long := strings.Repeat("x", 101)
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"ok", "Smart irrigation controller", false},
		{"whitespace only", "   ", true},
		{"too long", long, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Title = tt.title
			errs := v.Validate(&req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateEvaluation(t *testing.T) {
	v := New()

	valid := EvaluationRequest{
		Marks:    85,
		Feedback: "Solid implementation, light documentation.",
		Criteria: CriteriaRequest{
			Innovation:     18,
			Implementation: 24,
			Documentation:  12,
			Presentation:   16,
			Teamwork:       15,
		},
	}

	if errs := v.ValidateEvaluation(&valid); len(errs) > 0 {
		t.Fatalf("ValidateEvaluation() unexpected errors: %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(*EvaluationRequest)
	}{
		{"marks over 100", func(r *EvaluationRequest) { r.Marks = 101 }},
		{"marks negative", func(r *EvaluationRequest) { r.Marks = -1 }},
		{"missing feedback", func(r *EvaluationRequest) { r.Feedback = "" }},
		{"innovation over max", func(r *EvaluationRequest) { r.Criteria.Innovation = 21 }},
		{"implementation over max", func(r *EvaluationRequest) { r.Criteria.Implementation = 26 }},
		{"documentation over max", func(r *EvaluationRequest) { r.Criteria.Documentation = 16 }},
		{"presentation over max", func(r *EvaluationRequest) { r.Criteria.Presentation = 21 }},
		{"teamwork over max", func(r *EvaluationRequest) { r.Criteria.Teamwork = 21 }},
		{"negative criterion", func(r *EvaluationRequest) { r.Criteria.Teamwork = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if errs := v.ValidateEvaluation(&req); len(errs) == 0 {
				t.Error("ValidateEvaluation() should have failed")
			}
		})
	}
}

func TestValidateStatusUpdate(t *testing.T) {
	v := New()

	for _, status := range []models.ProjectStatus{models.StatusApproved, models.StatusRejected, models.StatusCompleted} {
		req := StatusUpdateRequest{Status: status}
		if errs := v.Validate(&req); len(errs) > 0 {
			t.Errorf("Validate(%s) unexpected errors: %v", status, errs)
		}
	}
	for _, status := range []models.ProjectStatus{models.StatusDraft, models.StatusSubmitted, models.StatusUnderReview, "bogus"} {
		req := StatusUpdateRequest{Status: status}
		if errs := v.Validate(&req); len(errs) == 0 {
			t.Errorf("Validate(%s) should have failed", status)
		}
	}
}
