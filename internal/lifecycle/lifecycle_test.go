package lifecycle

import (
	"testing"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		from models.ProjectStatus
		want bool
	}{
		{models.StatusDraft, true},
		{models.StatusSubmitted, true},
		{models.StatusUnderReview, true},
		{models.StatusRejected, true},
		{models.StatusApproved, false},
		{models.StatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			if got := CanSubmit(tt.from); got != tt.want {
				t.Errorf("CanSubmit(%s) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestCanOwnerEdit(t *testing.T) {
	tests := []struct {
		from models.ProjectStatus
		want bool
	}{
		{models.StatusDraft, true},
		{models.StatusSubmitted, true},
		{models.StatusUnderReview, true},
		{models.StatusRejected, true},
		{models.StatusApproved, false},
		{models.StatusCompleted, false},
	}
	for _, tt := range tests {
		if got := CanOwnerEdit(tt.from); got != tt.want {
			t.Errorf("CanOwnerEdit(%s) = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestCanOwnerDelete(t *testing.T) {
	for _, status := range models.ProjectStatuses {
		want := status == models.StatusDraft
		if got := CanOwnerDelete(status); got != want {
			t.Errorf("CanOwnerDelete(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestCanSetReviewStatus(t *testing.T) {
	tests := []struct {
		name string
		from models.ProjectStatus
		to   models.ProjectStatus
		want bool
	}{
		{"submitted to approved", models.StatusSubmitted, models.StatusApproved, true},
		{"under_review to rejected", models.StatusUnderReview, models.StatusRejected, true},
		{"approved to completed", models.StatusApproved, models.StatusCompleted, true},
		{"rejected to approved", models.StatusRejected, models.StatusApproved, true},
		{"idempotent repeat", models.StatusApproved, models.StatusApproved, true},
		{"draft cannot be decided", models.StatusDraft, models.StatusApproved, false},
		{"draft cannot be completed", models.StatusDraft, models.StatusCompleted, false},
		{"cannot set draft", models.StatusSubmitted, models.StatusDraft, false},
		{"cannot set submitted", models.StatusUnderReview, models.StatusSubmitted, false},
		{"cannot set under_review", models.StatusSubmitted, models.StatusUnderReview, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSetReviewStatus(tt.from, tt.to); got != tt.want {
				t.Errorf("CanSetReviewStatus(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestEvaluationStatus(t *testing.T) {
	if got := EvaluationStatus(); got != models.StatusUnderReview {
		t.Errorf("EvaluationStatus() = %s, want %s", got, models.StatusUnderReview)
	}
}

func TestIsReviewStatus(t *testing.T) {
	for _, status := range ReviewStatuses {
		if !IsReviewStatus(status) {
			t.Errorf("IsReviewStatus(%s) = false, want true", status)
		}
	}
	for _, status := range []models.ProjectStatus{models.StatusDraft, models.StatusSubmitted, models.StatusUnderReview} {
		if IsReviewStatus(status) {
			t.Errorf("IsReviewStatus(%s) = true, want false", status)
		}
	}
}
