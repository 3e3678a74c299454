package models

import "taskboard.com/taskboard/internal/constants"

// Actor is the authenticated identity behind a request. It is threaded
// explicitly through every service call instead of living in ambient
// session state.
type Actor struct {
	ID   string
	Role constants.Role
}

func (a Actor) Authenticated() bool {
	return a.ID != "" && a.Role.Valid()
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// CanManage reports whether the actor may create, edit and approve
// tasks. Managers share the admin surface for task management.
func (a Actor) CanManage() bool {
	return a.Role == constants.RoleAdmin || a.Role == constants.RoleManager
}
