package dto

// CheckoutRequest represents the body of POST /payment/checkout
type CheckoutRequest struct {
	ProductID  string `json:"product_id" example:"starter"`
	SuccessURL string `json:"success_url" example:"https://app.example.com/payment/success"`
	CancelURL  string `json:"cancel_url" example:"https://app.example.com/pricing"`
}

// CheckoutResponse carries the hosted checkout link
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// TokenBalanceResponse is the credit summary of a device
type TokenBalanceResponse struct {
	Balance             int `json:"balance"`
	FreeTrialsRemaining int `json:"free_trials_remaining"`
}

// WebhookResponse acknowledges a payment webhook delivery
type WebhookResponse struct {
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	Event           string `json:"event,omitempty"`
	InterviewsAdded *int   `json:"interviews_added,omitempty"`
}
