package domain

import (
	"context"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentTransaction tracks one checkout session. Status leaves pending exactly once.
type PaymentTransaction struct {
	ID          string
	DeviceID    string
	CheckoutID  string
	ProductID   string
	AmountCents int
	Currency    string
	Status      PaymentStatus
	CreatedAt   time.Time
}

// CheckoutRequest is what the payment provider needs to open a session.
type CheckoutRequest struct {
	ProviderProductID string
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}

// CheckoutSession is the provider's answer to CheckoutRequest.
type CheckoutSession struct {
	ID          string
	CheckoutURL string
}

// PaymentProvider opens hosted checkout sessions.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

const (
	WebhookEventCheckoutCompleted = "checkout.completed"

	MetadataDeviceID   = "device_id"
	MetadataProductKey = "product_key"
)

// WebhookEvent is the subset of the provider's event payload we act on.
type WebhookEvent struct {
	Type string           `json:"type"`
	Data WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	ID       string                 `json:"id"`
	Metadata map[string]interface{} `json:"metadata"`
}

// MetadataString returns a non-empty string metadata value.
func (d WebhookEventData) MetadataString(key string) (string, bool) {
	raw, ok := d.Metadata[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

const (
	WebhookStatusSuccess = "success"
	WebhookStatusIgnored = "ignored"

	WebhookReasonMissingMetadata  = "missing metadata"
	WebhookReasonAlreadyProcessed = "already processed"
)

// WebhookResult is the acknowledgment returned to the provider.
type WebhookResult struct {
	Status          string
	Reason          string
	Event           string
	InterviewsAdded int
}
