package middleware

import (
	"quizlink/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateIDParams rejects the request with 400 unless every named path parameter is a ULID.
func (vm *ValidationMiddleware) ValidateIDParams(params ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range params {
			if err := vm.validator.ID(name, c.Params(name)); err != nil {
				return err // handled by ErrorHandler
			}
		}
		return c.Next()
	}
}
