package handler

import (
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/middleware"
	"ai-interviewer/internal/service"
	"ai-interviewer/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// HeaderWebhookSignature carries the hex HMAC-SHA256 of the webhook body.
const HeaderWebhookSignature = "creem-signature"

type PaymentHandler struct {
	payments  service.PaymentService
	ledger    service.CreditLedger
	validator *validation.Validator
}

func NewPaymentHandler(payments service.PaymentService, ledger service.CreditLedger) *PaymentHandler {
	return &PaymentHandler{
		payments:  payments,
		ledger:    ledger,
		validator: validation.NewValidator(),
	}
}

// CreateCheckout godoc
// @Summary Start a credit purchase
// @Description Creates a hosted checkout session for a credit pack
// @Tags payment
// @Accept json
// @Produce json
// @Param X-Device-Id header string true "Anonymous device identifier"
// @Param request body dto.CheckoutRequest true "Checkout request"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid product"
// @Failure 503 {object} middleware.ErrorResponse "Payment service not configured"
// @Router /payment/checkout [post]
func (h *PaymentHandler) CreateCheckout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateCheckoutRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.payments.CreateCheckout(c.Context(), middleware.DeviceID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Webhook godoc
// @Summary Payment provider webhook
// @Description Reconciles a completed checkout and credits the purchasing device
// @Tags payment
// @Accept json
// @Produce json
// @Param creem-signature header string false "Hex HMAC-SHA256 of the raw body"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid signature"
// @Router /payment/webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	// fasthttp reuses the body buffer after the handler returns
	body := append([]byte(nil), c.Body()...)

	resp, err := h.payments.HandleWebhook(c.Context(), body, c.Get(HeaderWebhookSignature))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetTokens godoc
// @Summary Get credit balance
// @Description Returns the purchased balance and remaining free trials of the device
// @Tags payment
// @Produce json
// @Param X-Device-Id header string true "Anonymous device identifier"
// @Success 200 {object} dto.TokenBalanceResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /payment/tokens [get]
func (h *PaymentHandler) GetTokens(c *fiber.Ctx) error {
	resp, err := h.ledger.Balance(c.Context(), middleware.DeviceID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
