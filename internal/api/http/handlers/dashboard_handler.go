package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/helpdesk-service/internal/api/dto"
	"github.com/campus-it/helpdesk-service/internal/auth"
	"github.com/campus-it/helpdesk-service/internal/service"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

// DashboardHandler serves the aggregated dashboard and its standalone
// sections.
type DashboardHandler struct {
	dashboard *service.DashboardService
	status    *service.StatusService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, status *service.StatusService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, status: status}
}

// Dashboard GET /dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	data := h.dashboard.Load(c.UserContext(), principal)

	resp := dto.DashboardResponse{
		RecentTickets: make([]dto.TicketSummary, 0, len(data.RecentTickets)),
		Services: dto.ServiceStatusResponse{
			Services: data.Services.Snapshot,
			Degraded: data.Services.Degraded,
			Reason:   data.Services.Reason,
		},
		Announcements: make([]dto.AnnouncementResponse, 0, len(data.Announcements)),
	}
	for i := range data.RecentTickets {
		resp.RecentTickets = append(resp.RecentTickets, ticketSummary(&data.RecentTickets[i]))
	}
	for _, a := range data.Announcements {
		resp.Announcements = append(resp.Announcements, dto.AnnouncementResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		})
	}
	if data.TicketsErr != nil {
		domainErr := apperrors.ToDomainError(data.TicketsErr)
		resp.TicketsError = &dto.ErrorBody{Code: domainErr.Code, Message: domainErr.Message}
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ServiceStatus GET /service-status.
func (h *DashboardHandler) ServiceStatus(c *fiber.Ctx) error {
	result := h.status.FetchServiceStatus(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.ServiceStatusResponse{
		Services: result.Snapshot,
		Degraded: result.Degraded,
		Reason:   result.Reason,
	}})
}
