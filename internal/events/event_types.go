package events

import (
	"time"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketReassigned    EventType = "ticket_reassigned"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Category domain.TicketCategory `json:"category"`
	Title    string                `json:"title"`
}

// TicketStatusChangedPayload payload. CreatorID and AssigneeID let the
// refresh worker target the cached listings of the affected viewers.
type TicketStatusChangedPayload struct {
	OldStatus  domain.TicketStatus `json:"old_status"`
	NewStatus  domain.TicketStatus `json:"new_status"`
	CreatorID  string              `json:"creator_id"`
	AssigneeID *string             `json:"assignee_id,omitempty"`
}

// TicketReassignedPayload payload. OldAssigneeID is nil when the ticket
// was previously unassigned.
type TicketReassignedPayload struct {
	OldAssigneeID *string             `json:"old_assignee_id,omitempty"`
	NewAssigneeID string              `json:"new_assignee_id"`
	CreatorID     string              `json:"creator_id"`
	OldStatus     domain.TicketStatus `json:"old_status"`
	NewStatus     domain.TicketStatus `json:"new_status"`
}
