package domain

import "time"

// Role enumerates the roles recognized by the helpdesk.
type Role string

const (
	RoleStudent    Role = "student"
	RoleProfessor  Role = "professor"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

// Known reports whether r is one of the four recognized roles.
func (r Role) Known() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated actor making a request. The role is
// supplied by the identity provider and trusted as-is.
type Principal struct {
	ID   string
	Role Role
}

// TechnicianProfile identifies a reassignment target for display.
type TechnicianProfile struct {
	ID        string
	FirstName string
	LastName  string
	Role      Role
	CreatedAt time.Time
}
