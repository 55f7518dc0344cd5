package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "NEW"
	TicketStatusAssigned   TicketStatus = "ASSIGNED"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Terminal reports whether the status admits no outbound transition
// other than CLOSED (for RESOLVED) or none at all (for CLOSED).
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketCategory enumerates the supported incident categories.
type TicketCategory string

const (
	CategoryHardware      TicketCategory = "hardware"
	CategorySoftware      TicketCategory = "software"
	CategoryNetwork       TicketCategory = "redes"
	CategoryServers       TicketCategory = "servidores"
	CategoryCampusWifi    TicketCategory = "wifi_campus"
	CategoryLibraryAccess TicketCategory = "acceso_biblioteca"
	CategoryLMS           TicketCategory = "problemas_lms"
	CategoryEmail         TicketCategory = "correo_institucional"
	CategoryGrading       TicketCategory = "sistema_calificaciones"
	CategoryAcademicSW    TicketCategory = "software_academico"
)

var ticketCategories = map[TicketCategory]struct{}{
	CategoryHardware:      {},
	CategorySoftware:      {},
	CategoryNetwork:       {},
	CategoryServers:       {},
	CategoryCampusWifi:    {},
	CategoryLibraryAccess: {},
	CategoryLMS:           {},
	CategoryEmail:         {},
	CategoryGrading:       {},
	CategoryAcademicSW:    {},
}

// ValidCategory reports whether c names a known category.
func ValidCategory(c TicketCategory) bool {
	_, ok := ticketCategories[c]
	return ok
}

// Ticket is the aggregate for helpdesk incidents.
//
// CreatorID is set at creation and never changes. AssignedToID is
// non-nil whenever status is ASSIGNED, IN_PROGRESS or RESOLVED and is
// only mutated through the reassignment path.
type Ticket struct {
	ID           string
	TicketNumber string
	Title        string
	Description  string
	Category     TicketCategory
	Status       TicketStatus
	CreatorID    string
	AssignedToID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AssignmentRow is the admin projection used by the reassignment view.
type AssignmentRow struct {
	ID           string
	TicketNumber string
	Title        string
	AssignedToID *string
}

// RecurringIssue is one row of the recurring-issues report.
type RecurringIssue struct {
	Title    string
	Category TicketCategory
	Count    int64
}
