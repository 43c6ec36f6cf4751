package validator

import (
	"time"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name       string            `json:"name" validate:"required,max=50"`
	Email      string            `json:"email" validate:"required,email"`
	Password   string            `json:"password" validate:"required,min=6"`
	Role       models.UserRole   `json:"role" validate:"required,user_role"`
	Department models.Department `json:"department" validate:"omitempty,department"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TeamMemberRequest is a named collaborator on a project.
type TeamMemberRequest struct {
	Name       string `json:"name" validate:"required,max=50"`
	Email      string `json:"email" validate:"omitempty,email"`
	RollNumber string `json:"roll_number" validate:"omitempty,max=20"`
}

// ProjectCreateRequest creates a project in draft state.
type ProjectCreateRequest struct {
	Title       string              `json:"title" validate:"required,project_title"`
	Description string              `json:"description" validate:"required,max=3000"`
	Department  models.Department   `json:"department" validate:"omitempty,department"`
	TeamMembers []TeamMemberRequest `json:"team_members" validate:"omitempty,max=10,dive"`
	Deadline    *time.Time          `json:"deadline"`

	GithubLink        string `json:"github_link" validate:"omitempty,url,max=500"`
	LiveLink          string `json:"live_link" validate:"omitempty,url,max=500"`
	DocumentationLink string `json:"documentation_link" validate:"omitempty,url,max=500"`

	// Guest identity, used only when the actor is a guest.
	GuestName  string `json:"guest_name" validate:"omitempty,max=50"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
}

// ProjectUpdateRequest mutates a project's fields; nil means unchanged.
type ProjectUpdateRequest struct {
	Title       *string             `json:"title" validate:"omitempty,project_title"`
	Description *string             `json:"description" validate:"omitempty,max=3000"`
	TeamMembers []TeamMemberRequest `json:"team_members" validate:"omitempty,max=10,dive"`
	Deadline    *time.Time          `json:"deadline"`

	GithubLink        *string `json:"github_link" validate:"omitempty,url,max=500"`
	LiveLink          *string `json:"live_link" validate:"omitempty,url,max=500"`
	DocumentationLink *string `json:"documentation_link" validate:"omitempty,url,max=500"`
}

// SubmitProjectRequest submits a project for review.
type SubmitProjectRequest struct {
	Notes string            `json:"notes" validate:"omitempty,max=1000"`
	Files []FileManifestRef `json:"files" validate:"omitempty,dive"`
}

// FileManifestRef describes one uploaded file attached to a submission.
type FileManifestRef struct {
	Filename     string `json:"filename" validate:"required,max=255"`
	OriginalName string `json:"original_name" validate:"omitempty,max=255"`
	Path         string `json:"path" validate:"omitempty,max=500"`
	Size         int64  `json:"size" validate:"omitempty,min=0"`
	MimeType     string `json:"mime_type" validate:"omitempty,max=100"`
}

// CriteriaRequest is the five-way score breakdown; per-criterion maxima are
// enforced by Validator.ValidateEvaluation.
type CriteriaRequest struct {
	Innovation     int `json:"innovation"`
	Implementation int `json:"implementation"`
	Documentation  int `json:"documentation"`
	Presentation   int `json:"presentation"`
	Teamwork       int `json:"teamwork"`
}

// EvaluationRequest records or updates a professor's evaluation.
type EvaluationRequest struct {
	Marks    int             `json:"marks" validate:"min=0,max=100"`
	Feedback string          `json:"feedback" validate:"required,max=2000"`
	Criteria CriteriaRequest `json:"criteria"`
}

// StatusUpdateRequest sets an explicit review verdict on a project.
type StatusUpdateRequest struct {
	Status models.ProjectStatus `json:"status" validate:"required,review_status"`
}

// AssignProfessorRequest assigns an evaluating professor to a project.
type AssignProfessorRequest struct {
	ProjectID   uint `json:"project_id" validate:"required"`
	ProfessorID uint `json:"professor_id" validate:"required"`
}

// ActivityLogRequest appends a guest telemetry record.
type ActivityLogRequest struct {
	Action  string                 `json:"action" validate:"required,max=100"`
	Details map[string]interface{} `json:"details"`
}
