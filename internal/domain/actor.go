package domain

// Role a capability level carried by an actor. Roles come from the token
// claims and are passed around as plain values.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleEditor      Role = "editor"
	RoleAuthor      Role = "author"
	RoleContributor Role = "contributor"
	RoleSubscriber  Role = "subscriber"
)

// Actor the identity performing an operation
type Actor struct {
	ID    uint64
	Roles []Role
}

// HasRole reports whether the actor carries the given role
func (a Actor) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
