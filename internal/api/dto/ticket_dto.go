package dto

import (
	"time"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// ReassignRequest payload.
type ReassignRequest struct {
	TechnicianID string `json:"technician_id"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Title        string                `json:"title"`
	Category     domain.TicketCategory `json:"category"`
	Status       domain.TicketStatus   `json:"status"`
	CreatorID    string                `json:"creator_id"`
	AssignedToID *string               `json:"assigned_to_id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     domain.TicketCategory `json:"category"`
	Status       domain.TicketStatus   `json:"status"`
	CreatorID    string                `json:"creator_id"`
	AssignedToID *string               `json:"assigned_to_id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// AssignmentRowResponse is the admin reassignment projection.
type AssignmentRowResponse struct {
	ID           string  `json:"id"`
	TicketNumber string  `json:"ticket_number"`
	Title        string  `json:"title"`
	AssignedToID *string `json:"assigned_to_id"`
}

// TechnicianResponse identifies a reassignment target.
type TechnicianResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RecurringIssueResponse is one report row.
type RecurringIssueResponse struct {
	Title    string                `json:"title"`
	Category domain.TicketCategory `json:"category"`
	Count    int64                 `json:"count"`
}
