package domain

// Role is the closed set of caller roles.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleOrganizer   Role = "ORGANIZER"
	RoleParticipant Role = "PARTICIPANT"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleParticipant:
		return true
	}
	return false
}

// SelfRegisterable reports whether the role may be chosen at registration.
// Admin accounts are only created through seeding.
func (r Role) SelfRegisterable() bool {
	return r == RoleOrganizer || r == RoleParticipant
}
