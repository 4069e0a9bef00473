package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/steady/internal/services"
)

func checkInInputFromPayload(payload checkInPayload) services.CheckInInput {
	return services.CheckInInput{
		Mood:   payload.Mood,
		Status: payload.Status,
		Note:   payload.Note,
		Tags:   payload.Tags,
		Source: services.CheckInSourceAPI,
	}
}

func (handler *Handler) ListCheckIns(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondServiceError(c, err)
	}

	entries, err := handler.checkInService.List(user.ID, from, to)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) GetCheckIn(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	entry, err := handler.checkInService.Get(user.ID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// UpsertCheckIn writes the check-in for payload.Date (today when blank); 201 on create, 200 on replace.
func (handler *Handler) UpsertCheckIn(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := checkInPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	today := handler.today()
	day, err := parseDayOrDefault(payload.Date, today)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, created, err := handler.checkInService.Upsert(user.ID, day, today, checkInInputFromPayload(payload))
	if err != nil {
		return respondServiceError(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
	return c.JSON(entry)
}

func (handler *Handler) CheckInToday(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, created, err := handler.checkInService.CheckInToday(user.ID, handler.today(), services.CheckInSourceWeb)
	if err != nil {
		return respondServiceError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"check_in": entry,
		"created":  created,
	})
}

func (handler *Handler) UpdateCheckIn(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	payload := checkInPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.checkInService.Update(user.ID, id, checkInInputFromPayload(payload))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteCheckIn(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.checkInService.Delete(user.ID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
