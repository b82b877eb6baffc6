package models

// Role is the access role attached to an authenticated caller.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)

// Actor is the authenticated caller of an operation. It is built once at the
// auth boundary from the verified token and passed explicitly into every
// service call; nothing below the middleware reads ambient session state.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the actor carries the unconditional-bypass role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
