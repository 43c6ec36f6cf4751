package models

import (
	"time"
)

type ProjectStatus string

const (
	StatusDraft       ProjectStatus = "draft"
	StatusSubmitted   ProjectStatus = "submitted"
	StatusUnderReview ProjectStatus = "under_review"
	StatusApproved    ProjectStatus = "approved"
	StatusRejected    ProjectStatus = "rejected"
	StatusCompleted   ProjectStatus = "completed"
)

// ProjectStatuses lists every valid lifecycle state.
var ProjectStatuses = []ProjectStatus{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusCompleted,
}

func (s ProjectStatus) Valid() bool {
	for _, status := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// GuestDetails identifies an anonymous submitter on guest projects.
type GuestDetails struct {
	GuestName  string `json:"name" gorm:"size:50"`
	GuestEmail string `json:"email" gorm:"size:255"`
}

type Project struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"not null;size:100;index"`
	Description string        `json:"description" gorm:"not null;type:text"`
	Department  Department    `json:"department" gorm:"not null;size:50;index"`
	Status      ProjectStatus `json:"status" gorm:"not null;size:20;default:draft;index"`

	// SubmittedBy is nil for guest projects; a non-guest project always has one.
	SubmittedBy  *uint        `json:"submitted_by" gorm:"index"`
	IsGuest      bool         `json:"is_guest" gorm:"not null;default:false"`
	GuestDetails GuestDetails `json:"guest_details" gorm:"embedded;embeddedPrefix:guest_"`

	TeamMembers []TeamMember `json:"team_members" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	AssignedProfessor *uint      `json:"assigned_professor" gorm:"index"`
	Deadline          *time.Time `json:"deadline"`

	GithubLink        string `json:"github_link" gorm:"size:500"`
	LiveLink          string `json:"live_link" gorm:"size:500"`
	DocumentationLink string `json:"documentation_link" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Submitter *User `json:"submitter,omitempty" gorm:"foreignKey:SubmittedBy"`
	Professor *User `json:"professor,omitempty" gorm:"foreignKey:AssignedProfessor"`
}

// TeamMember is a named collaborator on a project, not a User reference.
type TeamMember struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ProjectID  uint   `json:"project_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:50"`
	Email      string `json:"email" gorm:"size:255"`
	RollNumber string `json:"roll_number" gorm:"size:20"`
}

func (Project) TableName() string {
	return "projects"
}

func (TeamMember) TableName() string {
	return "team_members"
}
