package handler

import (
	"ai-interviewer/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Interviews *InterviewHandler
	Payments   *PaymentHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts /health and the /api/v1 surface on app.
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Health)

	validationMiddleware := middleware.NewValidationMiddleware()
	api := app.Group("/api/v1")

	interviews := api.Group("/interviews")
	interviews.Post("/", middleware.RequireDeviceID(), h.Interviews.CreateInterview)
	interviews.Get("/:id", h.Interviews.GetInterview)
	interviews.Post("/:id/submit", h.Interviews.SubmitAnswers)
	interviews.Get("/:id/results", validationMiddleware.ValidateAccessCode(), h.Interviews.GetResults)

	payments := api.Group("/payment")
	payments.Post("/checkout", middleware.RequireDeviceID(), h.Payments.CreateCheckout)
	payments.Post("/webhook", h.Payments.Webhook)
	payments.Get("/tokens", middleware.RequireDeviceID(), h.Payments.GetTokens)
}
