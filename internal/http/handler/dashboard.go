package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseflow/internal/service"
)

// DashboardStats returns the consolidated cross-entity statistics payload.
func DashboardStats(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondData(c, fiber.StatusOK, stats)
	}
}
