package middleware

import (
	"boutique/internal/logger"
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Admin credential headers.
const (
	HeaderAdminEmail    = "email"
	HeaderAdminPassword = "password"
)

// AdminToken admits requests carrying a bearer token issued by the admin login.
func AdminToken(gate *services.AdminGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := bearerToken(c)
		return admit(c, gate, services.TokenCredential{Token: token})
	}
}

// AdminHeaders admits requests carrying the admin email and password headers.
func AdminHeaders(gate *services.AdminGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return admit(c, gate, services.HeaderCredential{
			Email:    c.Get(HeaderAdminEmail),
			Password: c.Get(HeaderAdminPassword),
		})
	}
}

func admit(c *fiber.Ctx, gate *services.AdminGate, cred services.AdminCredential) error {
	identity, err := gate.Verify(cred)
	if err != nil {
		logger.FromCtx(c.UserContext()).Warn("admin access denied",
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authorized as admin",
		})
	}
	c.Locals(LocalAdmin, identity)
	return c.Next()
}
