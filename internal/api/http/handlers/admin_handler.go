package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/helpdesk-service/internal/api/dto"
	"github.com/campus-it/helpdesk-service/internal/auth"
	"github.com/campus-it/helpdesk-service/internal/service"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

// AdminHandler serves the reassignment view: the assignment projection,
// the technician roster and the reassign action.
type AdminHandler struct {
	tickets      *service.TicketService
	reassignment *service.ReassignmentService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(tickets *service.TicketService, reassignment *service.ReassignmentService) *AdminHandler {
	return &AdminHandler{tickets: tickets, reassignment: reassignment}
}

// ListAssignmentRows GET /admin/tickets.
func (h *AdminHandler) ListAssignmentRows(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	rows, err := h.tickets.ListAssignmentRows(c.UserContext(), principal)
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.AssignmentRowResponse{
			ID:           row.ID,
			TicketNumber: row.TicketNumber,
			Title:        row.Title,
			AssignedToID: row.AssignedToID,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTechnicians GET /admin/technicians. An empty roster is a valid
// response; lookup failures degrade to it rather than erroring.
func (h *AdminHandler) ListTechnicians(c *fiber.Ctx) error {
	techs := h.reassignment.Roster(c.UserContext())
	items := make([]dto.TechnicianResponse, 0, len(techs))
	for _, tech := range techs {
		items = append(items, dto.TechnicianResponse{
			ID:        tech.ID,
			FirstName: tech.FirstName,
			LastName:  tech.LastName,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Reassign POST /admin/tickets/:id/reassign.
func (h *AdminHandler) Reassign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID == "" {
		return apperrors.NewValidationError("technician_id required", nil)
	}
	ticket, err := h.reassignment.Reassign(c.UserContext(), c.Params("id"), req.TechnicianID, principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}
