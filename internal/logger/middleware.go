package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// RequestContext copies the request id set by the requestid middleware into
// the user context so services can log with it, and logs every request once
// it completes.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		// A client-supplied id aliases fasthttp's pooled request buffer, and
		// the user context can outlive the request.
		c.SetUserContext(WithRequestID(c.UserContext(), utils.CopyString(reqID)))

		err := c.Next()

		FromCtx(c.UserContext()).Debug("request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.String("ip", c.IP()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}
