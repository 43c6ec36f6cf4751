package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is an immutable version record of one act of submitting a
// project for review. Versions are strictly increasing per project starting
// at 1; assignment happens under a lock on the project row so concurrent
// submits cannot collide.
type Submission struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProjectID uint `json:"project_id" gorm:"not null;uniqueIndex:idx_submissions_project_version"`

	// SubmittedBy is nil for guest submissions.
	SubmittedBy *uint `json:"submitted_by" gorm:"index"`

	Version int `json:"version" gorm:"not null;default:1;uniqueIndex:idx_submissions_project_version"`

	// Files is the uploaded file manifest (name, path, size, mime type).
	Files datatypes.JSON `json:"files,omitempty"`
	Notes string         `json:"notes" gorm:"size:1000"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"index:,sort:desc"`

	// Relations
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Submission) TableName() string {
	return "submissions"
}
