package handlers

import (
	"errors"

	"boutique/internal/logger"
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler serves the admin login and dashboard.
type AdminHandler struct {
	gate     *services.AdminGate
	stats    *services.StatsService
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(gate *services.AdminGate, stats *services.StatsService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{gate: gate, stats: stats, validate: validate}
}

// RegisterRoutes registers the login route behind limit and the dashboard
// behind guard.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, guard, limit fiber.Handler) {
	router.Post("/login", limit, h.HandleLogin)
	router.Get("/stats", guard, h.HandleStats)
}

// AdminLoginRequest is the body of an admin login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin exchanges the admin credentials for a token.
func (h *AdminHandler) HandleLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	token, admin, err := h.gate.Login(req.Email, req.Password)
	if errors.Is(err, services.ErrUnauthorized) {
		logger.FromCtx(c.UserContext()).Warn("admin login failed", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid admin credentials",
		})
	}
	if err != nil {
		return writeError(c, err, "Admin")
	}

	return c.JSON(fiber.Map{
		"message": "Admin login successful",
		"token":   token,
		"admin":   admin,
	})
}

// HandleStats serves the dashboard figures.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.stats.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, err, "Stats")
	}
	return c.JSON(stats)
}
