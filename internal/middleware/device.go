package middleware

import (
	"strings"

	"ai-interviewer/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderDeviceID identifies an anonymous client for credit tracking.
	HeaderDeviceID = "X-Device-Id"
	// LocalsDeviceID is the fiber locals key holding the validated device id.
	LocalsDeviceID = "device_id"
)

// RequireDeviceID rejects requests without a usable X-Device-Id header.
func RequireDeviceID() fiber.Handler {
	v := validation.NewValidator()
	return func(c *fiber.Ctx) error {
		deviceID := strings.TrimSpace(c.Get(HeaderDeviceID))
		if errs := v.ValidateDeviceID(deviceID); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalsDeviceID, deviceID)
		return c.Next()
	}
}

// DeviceID returns the id stored by RequireDeviceID.
func DeviceID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsDeviceID).(string)
	return id
}
