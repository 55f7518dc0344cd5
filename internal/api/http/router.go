package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/helpdesk-service/internal/api/http/handlers"
	"github.com/campus-it/helpdesk-service/internal/auth"
	"github.com/campus-it/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	Dashboard      *handlers.DashboardHandler
	Reports        *handlers.ReportsHandler
	Announcements  *handlers.AnnouncementsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	// /tickets is open to every authenticated principal; the role
	// policy inside the service decides visibility, so an unknown role
	// gets an explicit 403 rather than an empty list.
	authed.Get("/tickets", cfg.Tickets.ListTickets)
	authed.Post("/tickets", auth.RequireRole(domain.RoleStudent, domain.RoleProfessor), cfg.Tickets.CreateTicket)
	authed.Get("/tickets/:id", cfg.Tickets.GetTicket)
	authed.Post("/tickets/:id/status", auth.RequireRole(domain.RoleTechnician, domain.RoleAdmin), cfg.Tickets.UpdateStatus)

	authed.Get("/dashboard", auth.RequireKnownRole(), cfg.Dashboard.Dashboard)
	authed.Get("/service-status", auth.RequireKnownRole(), cfg.Dashboard.ServiceStatus)
	authed.Get("/announcements", auth.RequireKnownRole(), cfg.Announcements.List)

	admin := authed.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/tickets", cfg.Admin.ListAssignmentRows)
	admin.Get("/technicians", cfg.Admin.ListTechnicians)
	admin.Post("/tickets/:id/reassign", cfg.Admin.Reassign)

	authed.Get("/reports/recurring-issues", auth.RequireRole(domain.RoleAdmin), cfg.Reports.RecurringIssues)
}
