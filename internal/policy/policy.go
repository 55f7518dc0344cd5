// Package policy derives ticket visibility scopes from roles. It is the
// single source of truth for who may see which tickets; both the HTTP
// layer and the repository filter through it so the two never diverge.
package policy

import "github.com/campus-it/helpdesk-service/internal/domain"

// ScopeKind names a visibility strategy.
type ScopeKind string

const (
	// ScopeAll matches every ticket (admin).
	ScopeAll ScopeKind = "all"
	// ScopeAssigned matches tickets assigned to the principal (technician).
	ScopeAssigned ScopeKind = "assigned"
	// ScopeOwn matches tickets created by the principal (student, professor).
	ScopeOwn ScopeKind = "own"
	// ScopeNone matches nothing. Callers must treat this as an explicit
	// access-denied signal, not as an empty ticket list.
	ScopeNone ScopeKind = "none"
)

// TicketScope is a role-derived visibility predicate. PrincipalID is
// populated for the Assigned and Own kinds.
type TicketScope struct {
	Kind        ScopeKind
	PrincipalID string
}

// ScopeFor maps a principal to its ticket visibility scope. Pure and
// deterministic; unknown roles get ScopeNone.
func ScopeFor(p domain.Principal) TicketScope {
	switch p.Role {
	case domain.RoleAdmin:
		return TicketScope{Kind: ScopeAll}
	case domain.RoleTechnician:
		return TicketScope{Kind: ScopeAssigned, PrincipalID: p.ID}
	case domain.RoleStudent, domain.RoleProfessor:
		return TicketScope{Kind: ScopeOwn, PrincipalID: p.ID}
	default:
		return TicketScope{Kind: ScopeNone}
	}
}

// Denied reports whether the scope grants no visibility at all.
func (s TicketScope) Denied() bool {
	return s.Kind == ScopeNone
}

// Allows reports whether the scope admits the given ticket. It mirrors
// the SQL predicates the repository builds from the same scope.
func (s TicketScope) Allows(t domain.Ticket) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeAssigned:
		return t.AssignedToID != nil && *t.AssignedToID == s.PrincipalID
	case ScopeOwn:
		return t.CreatorID == s.PrincipalID
	default:
		return false
	}
}

// CanReassign reports whether the principal may drive the reassignment
// protocol. Only admins reassign tickets.
func CanReassign(p domain.Principal) bool {
	return p.Role == domain.RoleAdmin
}

// CanTransition reports whether the principal may change ticket status
// directly (technicians working their queue, admins anywhere).
func CanTransition(p domain.Principal) bool {
	return p.Role == domain.RoleTechnician || p.Role == domain.RoleAdmin
}

// CanCreate reports whether the principal may file new tickets.
func CanCreate(p domain.Principal) bool {
	return p.Role == domain.RoleStudent || p.Role == domain.RoleProfessor
}
