package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/steady/internal/services"
)

func (handler *Handler) ListHabitAnchors(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	anchors, err := handler.habitService.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(anchors)
}

func (handler *Handler) CreateHabitAnchor(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := habitAnchorPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	anchor, err := handler.habitService.Create(user.ID, services.HabitAnchorInput{
		Name:       payload.Name,
		AnchorText: payload.AnchorText,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(anchor)
}

func (handler *Handler) UpdateHabitAnchor(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	payload := habitAnchorPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	anchor, err := handler.habitService.Update(user.ID, id, services.HabitAnchorInput{
		Name:       payload.Name,
		AnchorText: payload.AnchorText,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(anchor)
}

func (handler *Handler) ToggleHabitAnchor(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	anchor, err := handler.habitService.ToggleActive(user.ID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(anchor)
}

func (handler *Handler) DeleteHabitAnchor(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.habitService.Delete(user.ID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) NextHabitPrompt(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	prompt, err := handler.habitService.NextPrompt(user.ID, id, handler.clock.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(prompt)
}
