// Package auth holds the actor model, the pure authorization predicates and
// the token/credential plumbing. Predicates take an explicit Actor value so
// there is no reliance on truthy checks against optional fields: a guest is
// a guest by construction, never a user row with blanks.
package auth

import (
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

// Actor is the authenticated identity attached to every request. Exactly
// one of two shapes exists: an authenticated user (IsGuest false, ID set)
// or the anonymous guest actor (IsGuest true, zero ID, no role).
type Actor struct {
	ID         uint
	Role       models.UserRole
	Department models.Department
	IsGuest    bool
}

// Guest returns the anonymous guest actor.
func Guest() Actor {
	return Actor{IsGuest: true}
}

// UserActor builds an Actor from a stored user row.
func UserActor(u *models.User) Actor {
	return Actor{
		ID:         u.ID,
		Role:       u.Role,
		Department: u.Department,
	}
}

// IsOwner reports whether the actor owns the project: id match for
// authenticated users, guest-flag match for guests.
func IsOwner(actor Actor, project *models.Project) bool {
	if actor.IsGuest {
		return project.IsGuest
	}
	return project.SubmittedBy != nil && *project.SubmittedBy == actor.ID
}

// SameDepartment reports whether the actor may act on the project under
// department scoping. Directors bypass scoping entirely; guests have no
// department and never pass.
func SameDepartment(actor Actor, project *models.Project) bool {
	if actor.IsGuest {
		return false
	}
	if actor.Role == models.RoleDirector {
		return true
	}
	return actor.Department == project.Department
}

// IsAssignedProfessor reports whether the actor is the professor assigned
// to the project.
func IsAssignedProfessor(actor Actor, project *models.Project) bool {
	if actor.IsGuest || project.AssignedProfessor == nil {
		return false
	}
	return *project.AssignedProfessor == actor.ID
}

// HasRole is the role gate used by the route middleware. Guests always pass
// the role gate; project-level ownership checks still apply downstream.
func HasRole(actor Actor, roles ...models.UserRole) bool {
	if actor.IsGuest {
		return true
	}
	for _, role := range roles {
		if actor.Role == role {
			return true
		}
	}
	return false
}
