// Package lifecycle holds the pure project status state machine. It decides
// which transitions are legal; who may request them is the auth package's
// concern, and persisting the result is the service layer's.
package lifecycle

import (
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

// ReviewStatuses are the verdicts a professor may set explicitly.
var ReviewStatuses = []models.ProjectStatus{
	models.StatusApproved,
	models.StatusRejected,
	models.StatusCompleted,
}

// IsReviewStatus reports whether s is a professor-settable verdict.
func IsReviewStatus(s models.ProjectStatus) bool {
	for _, status := range ReviewStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanSubmit reports whether a project in the given state may be submitted
// for review. Resubmission is allowed after feedback (submitted,
// under_review, rejected) but a verdict of approved or completed is final
// from the submitter's side.
func CanSubmit(from models.ProjectStatus) bool {
	switch from {
	case models.StatusDraft, models.StatusSubmitted, models.StatusUnderReview, models.StatusRejected:
		return true
	}
	return false
}

// CanOwnerEdit reports whether the submitting student may still mutate the
// project. Edits stop once a project is approved or completed.
func CanOwnerEdit(from models.ProjectStatus) bool {
	return from != models.StatusApproved && from != models.StatusCompleted
}

// CanOwnerDelete reports whether the submitting student may remove the
// project. Only drafts are deletable.
func CanOwnerDelete(from models.ProjectStatus) bool {
	return from == models.StatusDraft
}

// CanSetReviewStatus reports whether a professor may move a project from
// the current state to the requested verdict. Drafts are owner territory
// and cannot be pushed straight to a verdict; every post-submission state
// may move between the three verdicts, and repeating the current verdict is
// a no-op rather than an error.
func CanSetReviewStatus(from, to models.ProjectStatus) bool {
	if !IsReviewStatus(to) {
		return false
	}
	return from != models.StatusDraft
}

// EvaluationStatus is the state every evaluation write forces the project
// into, regardless of its current state. A repeat evaluation on an already
// approved or rejected project pulls it back to under_review.
func EvaluationStatus() models.ProjectStatus {
	return models.StatusUnderReview
}
