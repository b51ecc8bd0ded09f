package handlers

import (
	"errors"
	"fmt"

	"boutique/internal/logger"
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps a service error onto a status code. resource names the
// thing looked up in 404 messages. Unexpected errors are logged and answered
// with a generic message so store details never reach clients.
func writeError(c *fiber.Ctx, err error, resource string) error {
	status := fiber.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUnauthorized):
		status, msg = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrNotFound):
		status, msg = fiber.StatusNotFound, resource+" not found"
	case errors.Is(err, services.ErrConflict):
		status, msg = fiber.StatusConflict, err.Error()
	default:
		logger.FromCtx(c.UserContext()).Error("request failed",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
	}
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// parseAndValidate binds the JSON body into dst and runs struct validation.
// On failure the response has already been written and ok is false.
func parseAndValidate(c *fiber.Ctx, v *validator.Validate, dst interface{}) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := v.Struct(dst); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
