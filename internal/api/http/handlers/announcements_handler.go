package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/helpdesk-service/internal/api/dto"
	"github.com/campus-it/helpdesk-service/internal/repository"
)

// AnnouncementsHandler serves the read-only IT announcement feed.
type AnnouncementsHandler struct {
	announcements repository.AnnouncementRepository
	limit         int
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcements repository.AnnouncementRepository, limit int) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: announcements, limit: limit}
}

// List GET /announcements.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	items, err := h.announcements.ListRecent(c.UserContext(), h.limit)
	if err != nil {
		return err
	}
	resp := make([]dto.AnnouncementResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, dto.AnnouncementResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}
