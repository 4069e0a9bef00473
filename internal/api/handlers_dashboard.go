package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.dashboardService.BuildSummary(user.ID, handler.today())
	if err != nil {
		log.Printf("dashboard for user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	handler.metrics.dashboardBuilt(summary)
	return c.JSON(summary)
}
