package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/steady/internal/models"
	"github.com/terraincognita07/steady/internal/services"
)

const (
	rejectReasonMissingToken   = "missing_token"
	rejectReasonInvalidToken   = "invalid_token"
	rejectReasonUnknownUser    = "unknown_user"
	rejectReasonPasswordChange = "password_change_required"
)

var errUnauthorized = errors.New("unauthorized")

// passwordChangeAllowedPaths stay reachable while a reset password must be replaced.
var passwordChangeAllowedPaths = map[string]struct{}{
	"/api/auth/change-password": {},
	"/api/auth/logout":          {},
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, string, error) {
	raw := strings.TrimSpace(c.Cookies(authCookieName))
	if raw == "" {
		return nil, rejectReasonMissingToken, errUnauthorized
	}

	claims, err := handler.parseToken(raw)
	if err != nil {
		return nil, rejectReasonInvalidToken, errUnauthorized
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrAuthUserNotFound) {
			return nil, rejectReasonUnknownUser, errUnauthorized
		}
		return nil, "", err
	}
	return &user, "", nil
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, reason, err := handler.authenticateRequest(c)
	if err != nil {
		if !errors.Is(err, errUnauthorized) {
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
		handler.metrics.authRejected(reason)
		handler.clearAuthCookie(c)
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if user.MustChangePassword {
		if _, allowed := passwordChangeAllowedPaths[c.Path()]; !allowed {
			handler.metrics.authRejected(rejectReasonPasswordChange)
			return apiError(c, fiber.StatusForbidden, "password change required")
		}
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}
