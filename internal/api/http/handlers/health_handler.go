package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/helpdesk-service/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Redis is advisory; only the ticket store
// gates readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := http.StatusOK

	if pool := h.postgres.PoolHandle(); pool != nil {
		if err := pool.Ping(c.UserContext()); err != nil {
			checks["postgres"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	} else {
		checks["postgres"] = "not configured"
		status = http.StatusServiceUnavailable
	}

	if err := h.redis.Ping(c.UserContext()); err != nil {
		checks["redis"] = "unreachable"
	}

	return c.Status(status).JSON(fiber.Map{"checks": checks})
}
