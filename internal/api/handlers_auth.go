package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/steady/internal/models"
	"github.com/terraincognita07/steady/internal/services"
)

type userResponse struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	MustChangePassword bool   `json:"must_change_password"`
}

func newUserResponse(user models.User) userResponse {
	return userResponse{ID: user.ID, Username: user.Username, MustChangePassword: user.MustChangePassword}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(input.Username, input.Password, handler.clock.Now())
	if err != nil {
		if errors.Is(err, services.ErrAuthRegisterFailed) {
			log.Printf("register failed: %v", err)
		}
		return respondServiceError(c, err)
	}

	if err := handler.startSession(c, user.ID, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.metrics.authRejected("invalid_credentials")
		}
		return respondServiceError(c, err)
	}

	if err := handler.startSession(c, user.ID, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(newUserResponse(user))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.startSession(c, user.ID, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) startSession(c *fiber.Ctx, userID uint, rememberMe bool) error {
	ttl := defaultAuthTokenTTL
	if rememberMe {
		ttl = rememberAuthTokenTTL
	}
	token, err := handler.buildToken(userID, ttl)
	if err != nil {
		return err
	}
	handler.setAuthCookie(c, token, ttl)
	return nil
}
