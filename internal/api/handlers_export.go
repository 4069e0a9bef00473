package api

import (
	"bytes"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/steady/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondServiceError(c, err)
	}

	summary, err := handler.exportService.BuildSummary(user.ID, from, to)
	if err != nil {
		log.Printf("export summary for user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCheckInsCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondServiceError(c, err)
	}

	rows, err := handler.exportService.BuildRows(user.ID, from, to)
	if err != nil {
		log.Printf("export rows for user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	var buffer bytes.Buffer
	if err := services.WriteExportCSV(&buffer, rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	filename := fmt.Sprintf("steady-checkins-%s.csv", handler.today().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buffer.Bytes())
}
