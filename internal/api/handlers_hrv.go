package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/steady/internal/services"
)

func (handler *Handler) ListHRVReadings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondServiceError(c, err)
	}

	readings, err := handler.hrvService.List(user.ID, from, to)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(readings)
}

func (handler *Handler) UpsertHRVReading(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := hrvPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if payload.RMSSDMs == nil || payload.SDNNMs == nil || payload.RestingHR == nil {
		return apiError(c, fiber.StatusBadRequest, "rmssd_ms, sdnn_ms and resting_hr are required")
	}

	today := handler.today()
	day, err := parseDayOrDefault(payload.Date, today)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if day.After(today) {
		return apiError(c, fiber.StatusBadRequest, "reading date is in the future")
	}

	reading, err := handler.hrvService.Upsert(user.ID, day, services.HRVInput{
		RMSSDMs:    *payload.RMSSDMs,
		SDNNMs:     *payload.SDNNMs,
		RestingHR:  *payload.RestingHR,
		MeasuredAt: payload.MeasuredAt,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reading)
}

func (handler *Handler) LatestHRVReading(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	reading, err := handler.hrvService.Latest(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if reading == nil {
		return apiError(c, fiber.StatusNotFound, services.ErrHRVReadingNotFound.Error())
	}

	readiness := services.ClassifyReadiness(reading, handler.today(), handler.analytics)
	return c.JSON(fiber.Map{
		"reading":   reading,
		"readiness": readiness,
	})
}

func (handler *Handler) DeleteHRVReading(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := services.ParseCivilDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.hrvService.DeleteByDate(user.ID, day); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
