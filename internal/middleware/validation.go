package middleware

import (
	"ai-interviewer/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalsAccessCode is the fiber locals key holding the validated results access code.
const LocalsAccessCode = "validated_access_code"

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

// ValidateAccessCode requires the code query parameter on results requests
func (vm *ValidationMiddleware) ValidateAccessCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Query("code")
		if errors := vm.validator.ValidateAccessCode(code); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(LocalsAccessCode, code)
		return c.Next()
	}
}
