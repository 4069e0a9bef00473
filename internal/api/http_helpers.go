package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/steady/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err *services.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": err.Fields,
	})
}

func parseIDParam(c *fiber.Ctx, key string) (uint, error) {
	raw := strings.TrimSpace(c.Params(key))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// parseDayOrDefault reads a YYYY-MM-DD value; blank input means fallback.
func parseDayOrDefault(raw string, fallback time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	return services.ParseCivilDay(trimmed)
}

// respondServiceError translates service sentinels into HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return validationError(c, validation)
	}

	switch {
	case errors.Is(err, services.ErrCheckInNotFound),
		errors.Is(err, services.ErrHRVReadingNotFound),
		errors.Is(err, services.ErrHabitAnchorNotFound),
		errors.Is(err, services.ErrAuthUserNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCheckInFutureDate),
		errors.Is(err, services.ErrRangeFromInvalid),
		errors.Is(err, services.ErrRangeToInvalid),
		errors.Is(err, services.ErrRangeInvalid),
		errors.Is(err, services.ErrInvalidUsername),
		errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
