package services

import (
	"errors"
	"fmt"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

// ===== SENTINEL ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")

	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrEvaluationNotFound = fmt.Errorf("evaluation %w", ErrNotFound)

	ErrEmailTaken         = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ===== TYPED ERRORS =====

// PermissionError describes a denied operation with enough context to log.
type PermissionError struct {
	ActorID   uint
	ProjectID uint
	Resource  string
	Action    string
	Reason    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s %s (%s)", e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Unwrap() error { return ErrForbidden }

func NewPermissionError(actorID, projectID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		ActorID:   actorID,
		ProjectID: projectID,
		Resource:  resource,
		Action:    action,
		Reason:    reason,
	}
}

// StateTransitionError is returned when a project lifecycle rule refuses an
// operation in the project's current state.
type StateTransitionError struct {
	ProjectID uint
	From      models.ProjectStatus
	To        models.ProjectStatus
	Operation string
}

func (e *StateTransitionError) Error() string {
	if e.To != "" {
		return fmt.Sprintf("project %d: cannot move from %s to %s", e.ProjectID, e.From, e.To)
	}
	return fmt.Sprintf("project %d: cannot %s while %s", e.ProjectID, e.Operation, e.From)
}

func (e *StateTransitionError) Unwrap() error { return ErrConflict }
