package middleware

import (
	"design-dojo/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedTopicKey holds the topic path parameter once it passed validation.
const ValidatedTopicKey = "validated_topic"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateTopic validates the topic path parameter.
func (vm *ValidationMiddleware) ValidateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		topic := c.Params("topic")
		if errs := vm.validator.ValidateTopic(topic); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedTopicKey, topic)
		return c.Next()
	}
}

// ValidateUserIDParam rejects a :user_id path parameter that is not a ULID.
func (vm *ValidationMiddleware) ValidateUserIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateUserID(c.Params("user_id")); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}
