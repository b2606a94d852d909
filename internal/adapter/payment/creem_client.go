package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/logger"

	"go.uber.org/zap"
)

const (
	checkoutsPath         = "/v1/checkouts"
	defaultRequestTimeout = 30 * time.Second
	maxErrorBodyBytes     = 4096
)

// CreemClient opens hosted checkout sessions on Creem.
type CreemClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewCreemClient creates a client for the Creem API rooted at apiURL.
func NewCreemClient(apiURL, apiKey string, timeout time.Duration) *CreemClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &CreemClient{
		apiURL:     strings.TrimRight(apiURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createCheckoutRequest struct {
	ProductID  string            `json:"product_id"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type createCheckoutResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckout implements domain.PaymentProvider.
func (c *CreemClient) CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	body, err := json.Marshal(createCheckoutRequest{
		ProductID:  req.ProviderProductID,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+checkoutsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.Get().Error("Creem rejected checkout request",
			zap.Int("status", resp.StatusCode),
			zap.String("product_id", req.ProviderProductID),
			zap.String("body", string(snippet)))
		return nil, fmt.Errorf("checkout request returned status %d", resp.StatusCode)
	}

	var out createCheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}
	if out.CheckoutURL == "" {
		return nil, fmt.Errorf("checkout response has no checkout_url")
	}

	return &domain.CheckoutSession{ID: out.ID, CheckoutURL: out.CheckoutURL}, nil
}
