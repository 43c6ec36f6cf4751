package events

import (
	"context"
	"time"
)

// Event types emitted by the service.
const (
	EventProjectCreated    = "project.created"
	EventProjectSubmitted  = "project.submitted"
	EventProjectEvaluated  = "project.evaluated"
	EventProjectStatusSet  = "project.status_changed"
	EventProfessorAssigned = "project.professor_assigned"
	EventProjectDeleted    = "project.deleted"
	EventGuestActivity     = "guest.activity"
	EventUserRegistered    = "user.registered"
)

// Event is the envelope published on the internal bus.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventPublisher publishes domain events. Implementations must be safe for
// concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
