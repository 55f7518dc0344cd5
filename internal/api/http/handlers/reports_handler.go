package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/helpdesk-service/internal/api/dto"
	"github.com/campus-it/helpdesk-service/internal/auth"
	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/service"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

// ReportsHandler serves admin reports.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// RecurringIssues GET /reports/recurring-issues. An absent or "all"
// category means no category filter; absent dates mean unbounded.
func (h *ReportsHandler) RecurringIssues(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	query := service.RecurringIssuesQuery{}
	if cat := c.Query("category"); cat != "" && cat != "all" {
		category := domain.TicketCategory(cat)
		query.Category = &category
	}
	if from := parseDate(c.Query("date_from")); from != nil {
		query.DateFrom = from
	}
	if to := parseDate(c.Query("date_to")); to != nil {
		query.DateTo = to
	}

	issues, err := h.reports.TopRecurringIssues(c.UserContext(), principal, query)
	if err != nil {
		return err
	}
	items := make([]dto.RecurringIssueResponse, 0, len(issues))
	for _, issue := range issues {
		items = append(items, dto.RecurringIssueResponse{
			Title:    issue.Title,
			Category: issue.Category,
			Count:    issue.Count,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseDate(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}
