package access

import (
	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/directory"
)

// Actor identifies who is issuing a command. It is request-scoped and passed
// explicitly into every role-sensitive operation; there is no process-wide
// current role.
type Actor struct {
	UserID uuid.UUID
	Role   directory.Role
}

// NewActor creates an actor for the given user and role
func NewActor(userID uuid.UUID, role directory.Role) Actor {
	return Actor{UserID: userID, Role: role}
}

// SeesEverything reports whether the actor has unrestricted read visibility
func (a Actor) SeesEverything() bool {
	return a.Role == directory.RoleAdmin || a.Role == directory.RoleSupervisor
}
