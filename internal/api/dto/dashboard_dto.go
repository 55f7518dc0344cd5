package dto

import (
	"time"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

// AnnouncementResponse is one entry of the IT announcement feed.
type AnnouncementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceStatusResponse reports the snapshot and whether it is the
// substituted fallback rather than live data.
type ServiceStatusResponse struct {
	Services domain.StatusSnapshot `json:"services"`
	Degraded bool                  `json:"degraded"`
	Reason   string                `json:"reason,omitempty"`
}

// DashboardResponse joins the three dashboard sections. TicketsError is
// set when the critical ticket read failed; the other sections still
// render.
type DashboardResponse struct {
	RecentTickets []TicketSummary        `json:"recent_tickets"`
	TicketsError  *ErrorBody             `json:"tickets_error,omitempty"`
	Services      ServiceStatusResponse  `json:"services"`
	Announcements []AnnouncementResponse `json:"announcements"`
}

// ErrorBody mirrors the error envelope used by the error middleware.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
