package middleware

import (
	"time"

	"design-dojo/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request after the handler chain returns.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		logger.Get().Info("HTTP request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
