// Package handler holds the fiber HTTP handlers. Handlers return errors to
// middleware.ErrorHandler rather than writing error bodies themselves.
package handler

import (
	"design-dojo/internal/domain"
	"design-dojo/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the JSON body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	return nil
}

// requireUser returns the caller's id set by the auth middleware.
func requireUser(c *fiber.Ctx) (string, error) {
	userID := middleware.UserIDFromCtx(c)
	if userID == "" {
		return "", domain.NewUnauthorizedError("Authentication required")
	}
	return userID, nil
}
