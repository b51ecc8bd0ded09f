package handlers

import (
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ThemeHandler serves the live theme and its presets.
type ThemeHandler struct {
	service  *services.ThemeService
	validate *validator.Validate
}

func NewThemeHandler(service *services.ThemeService, validate *validator.Validate) *ThemeHandler {
	return &ThemeHandler{service: service, validate: validate}
}

// RegisterRoutes registers the theme routes. Writes go through guard.
func (h *ThemeHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	themeRoutes := router.Group("/theme")
	themeRoutes.Get("/", h.HandleGetTheme)
	themeRoutes.Post("/", guard, h.HandleUpdateTheme)
	themeRoutes.Get("/presets", h.HandleGetPresets)
	themeRoutes.Post("/preset/:name", guard, h.HandleApplyPreset)
}

func (h *ThemeHandler) HandleGetTheme(c *fiber.Ctx) error {
	theme, err := h.service.Current(c.UserContext())
	if err != nil {
		return writeError(c, err, "Theme")
	}
	return c.JSON(theme)
}

func (h *ThemeHandler) HandleUpdateTheme(c *fiber.Ctx) error {
	var patch services.ThemePatch
	if ok, err := parseAndValidate(c, h.validate, &patch); !ok {
		return err
	}

	theme, err := h.service.Update(c.UserContext(), patch)
	if err != nil {
		return writeError(c, err, "Theme")
	}
	return c.JSON(fiber.Map{
		"message": "Theme updated successfully",
		"theme":   theme,
	})
}

func (h *ThemeHandler) HandleGetPresets(c *fiber.Ctx) error {
	return c.JSON(h.service.Presets())
}

func (h *ThemeHandler) HandleApplyPreset(c *fiber.Ctx) error {
	theme, err := h.service.ApplyPreset(c.UserContext(), c.Params("name"))
	if err != nil {
		return writeError(c, err, "Theme")
	}
	return c.JSON(fiber.Map{
		"message": "Theme applied successfully",
		"theme":   theme,
	})
}
