package services

import (
	"context"
	"errors"
	"testing"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/events"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

func TestActivityLogAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.manager.Activity().Log(ctx, &ActivityLogRequest{
		Action:  "viewed_project",
		Details: map[string]interface{}{"project_id": 7},
	}, "203.0.113.9", "Mozilla/5.0")
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	hod := env.createUser(t, "Rao", models.RoleHOD, models.DeptComputerScience)
	activities, err := env.manager.Activity().ListRecent(ctx, auth.UserActor(hod))
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("activity count = %d, want 1", len(activities))
	}
	if activities[0].Action != "viewed_project" || activities[0].IPAddress != "203.0.113.9" {
		t.Errorf("activity = %+v", activities[0])
	}

	var published bool
	for _, event := range env.publisher.GetPublishedEvents() {
		if event.Type == events.EventGuestActivity {
			published = true
		}
	}
	if !published {
		t.Error("logging activity should publish guest.activity")
	}
}

func TestActivityLogValidation(t *testing.T) {
	env := newTestEnv(t)

	err := env.manager.Activity().Log(context.Background(), &ActivityLogRequest{}, "", "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Log() without action: error = %v, want ErrValidationFailed", err)
	}
}

func TestActivityListRoleGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.createUser(t, "Ravi", models.RoleStudent, models.DeptComputerScience)

	if _, err := env.manager.Activity().ListRecent(ctx, auth.UserActor(student)); !errors.Is(err, ErrForbidden) {
		t.Errorf("ListRecent() as student: error = %v, want ErrForbidden", err)
	}
	if _, err := env.manager.Activity().ListRecent(ctx, auth.Guest()); !errors.Is(err, ErrForbidden) {
		t.Errorf("ListRecent() as guest: error = %v, want ErrForbidden", err)
	}

	director := env.createUser(t, "Iyer", models.RoleDirector, "")
	if _, err := env.manager.Activity().ListRecent(ctx, auth.UserActor(director)); err != nil {
		t.Errorf("ListRecent() as director: %v", err)
	}
}
