package middleware

import (
	"strings"

	"boutique/internal/logger"
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals keys set by the auth middlewares.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalAdmin    = "admin"
)

// AuthRequired is a Fiber middleware to check for a valid user JWT.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, msg := bearerToken(c)
		if msg != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msg})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			logger.FromCtx(c.UserContext()).Debug("jwt validation failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// UserID returns the id stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. A non-empty msg describes why it is missing.
func bearerToken(c *fiber.Ctx) (token string, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "Authorization header is required"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || parts[1] == "" {
		return "", "Authorization header format must be 'Bearer <token>'"
	}
	return parts[1], ""
}
