package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"ai-interviewer/internal/config"
	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/logger"
	"ai-interviewer/internal/metrics"
	"ai-interviewer/internal/util"

	"go.uber.org/zap"
)

const (
	PaymentNotConfiguredMessage = "Payment service not configured"
	CheckoutFailedMessage       = "Failed to create checkout"
	InvalidSignatureMessage     = "Invalid signature"

	webhookReasonMissingCheckoutID = "missing checkout id"
)

// PaymentService bridges the payment provider and the credit ledger.
type PaymentService interface {
	CreateCheckout(ctx context.Context, deviceID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	// HandleWebhook verifies and reconciles one provider event. Redeliveries never credit twice.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*dto.WebhookResponse, error)
}

type paymentService struct {
	cfg          config.PaymentConfig
	provider     domain.PaymentProvider
	transactions domain.PaymentTransactionRepository
	balances     domain.TokenBalanceRepository
	txManager    domain.TransactionManager
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewPaymentService creates the payment bridge. provider may be nil when payments are not configured.
func NewPaymentService(
	cfg config.PaymentConfig,
	provider domain.PaymentProvider,
	transactions domain.PaymentTransactionRepository,
	balances domain.TokenBalanceRepository,
	txManager domain.TransactionManager,
	m *metrics.Metrics,
) PaymentService {
	return &paymentService{
		cfg:          cfg,
		provider:     provider,
		transactions: transactions,
		balances:     balances,
		txManager:    txManager,
		metrics:      m,
		now:          time.Now,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, deviceID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if !s.cfg.PaymentConfigured() || s.provider == nil {
		return nil, domain.NewServiceUnavailableError(PaymentNotConfiguredMessage)
	}

	providerProductID, ok := s.cfg.ProductIDs[req.ProductID]
	if !ok || providerProductID == "" {
		return nil, domain.NewInvalidProductError(req.ProductID)
	}
	product, ok := s.cfg.Catalog[req.ProductID]
	if !ok {
		return nil, domain.NewInvalidProductError(req.ProductID)
	}

	session, err := s.provider.CreateCheckout(ctx, domain.CheckoutRequest{
		ProviderProductID: providerProductID,
		SuccessURL:        req.SuccessURL,
		CancelURL:         req.CancelURL,
		Metadata: map[string]string{
			domain.MetadataDeviceID:   deviceID,
			domain.MetadataProductKey: req.ProductID,
		},
	})
	if err != nil {
		return nil, domain.NewInternalError(CheckoutFailedMessage, err)
	}
	if session.ID == "" {
		return nil, domain.NewInternalError(CheckoutFailedMessage, nil).WithContext("reason", "provider returned no checkout id")
	}

	tx := &domain.PaymentTransaction{
		ID:          util.NewULID(),
		DeviceID:    deviceID,
		CheckoutID:  session.ID,
		ProductID:   req.ProductID,
		AmountCents: product.PriceCents,
		Currency:    product.Currency,
		Status:      domain.PaymentStatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, domain.NewInternalError("Failed to record payment transaction", err)
	}

	logger.Get().Info("Checkout session created",
		zap.String("device_id", deviceID),
		zap.String("product_id", req.ProductID),
		zap.String("checkout_id", session.ID))

	return &dto.CheckoutResponse{CheckoutURL: session.CheckoutURL}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*dto.WebhookResponse, error) {
	l := logger.Get()

	if s.cfg.WebhookSecret != "" {
		if !VerifySignature(s.cfg.WebhookSecret, rawBody, signature) {
			l.Warn("Rejected webhook with invalid signature")
			return nil, domain.NewUnauthenticatedError(InvalidSignatureMessage)
		}
	} else {
		l.Debug("Webhook secret not configured, skipping signature check")
	}

	var event domain.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}

	if event.Type != domain.WebhookEventCheckoutCompleted {
		l.Info("Ignoring webhook event", zap.String("type", event.Type))
		return &dto.WebhookResponse{Status: domain.WebhookStatusIgnored, Event: event.Type}, nil
	}

	deviceID, okDevice := event.Data.MetadataString(domain.MetadataDeviceID)
	productKey, okProduct := event.Data.MetadataString(domain.MetadataProductKey)
	if !okDevice || !okProduct {
		l.Warn("Ignoring checkout.completed without metadata", zap.String("checkout_id", event.Data.ID))
		return &dto.WebhookResponse{Status: domain.WebhookStatusIgnored, Reason: domain.WebhookReasonMissingMetadata}, nil
	}
	checkoutID := strings.TrimSpace(event.Data.ID)
	if checkoutID == "" {
		l.Warn("Ignoring checkout.completed without checkout id", zap.String("device_id", deviceID))
		return &dto.WebhookResponse{Status: domain.WebhookStatusIgnored, Reason: webhookReasonMissingCheckoutID}, nil
	}

	product, known := s.cfg.Catalog[productKey]
	if !known {
		l.Warn("Webhook references unknown product, crediting nothing",
			zap.String("product_key", productKey),
			zap.String("checkout_id", checkoutID))
	}

	result, err := s.reconcile(ctx, checkoutID, deviceID, productKey, product)
	if err != nil {
		return nil, err
	}
	if result.Status != domain.WebhookStatusSuccess {
		return toWebhookResponse(result), nil
	}

	s.metrics.PaymentSucceeded(productKey, product.PriceCents)
	l.Info("Payment completed",
		zap.String("device_id", deviceID),
		zap.String("product_key", productKey),
		zap.String("checkout_id", checkoutID),
		zap.Int("interviews_added", result.InterviewsAdded))

	return toWebhookResponse(result), nil
}

// reconcile completes the transaction and credits the device in one store transaction.
// Only a pending→completed transition, or a checkout we never recorded, credits the balance.
func (s *paymentService) reconcile(ctx context.Context, checkoutID, deviceID, productKey string, product config.Product) (*domain.WebhookResult, error) {
	var result *domain.WebhookResult

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		moved, err := s.transactions.MarkCompleted(txCtx, checkoutID)
		if err != nil {
			return err
		}

		if !moved {
			existing, err := s.transactions.GetByCheckoutID(txCtx, checkoutID)
			if err != nil {
				return err
			}
			if existing != nil {
				logger.Get().Info("Ignoring redelivered checkout.completed",
					zap.String("checkout_id", checkoutID),
					zap.String("status", string(existing.Status)))
				result = &domain.WebhookResult{Status: domain.WebhookStatusIgnored, Reason: domain.WebhookReasonAlreadyProcessed}
				return nil
			}

			// 체크아웃 기록이 없으면 완료 상태로 남겨서 재전송을 걸러낸다
			if err := s.transactions.Create(txCtx, &domain.PaymentTransaction{
				ID:          util.NewULID(),
				DeviceID:    deviceID,
				CheckoutID:  checkoutID,
				ProductID:   productKey,
				AmountCents: product.PriceCents,
				Currency:    product.Currency,
				Status:      domain.PaymentStatusCompleted,
				CreatedAt:   s.now().UTC(),
			}); err != nil {
				return err
			}
		}

		if product.Credits > 0 {
			if err := s.balances.AddCredits(txCtx, deviceID, product.Credits); err != nil {
				return err
			}
		}
		result = &domain.WebhookResult{
			Status:          domain.WebhookStatusSuccess,
			Event:           domain.WebhookEventCheckoutCompleted,
			InterviewsAdded: product.Credits,
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to process payment webhook", err).WithContext("checkout_id", checkoutID)
	}
	return result, nil
}

func toWebhookResponse(r *domain.WebhookResult) *dto.WebhookResponse {
	resp := &dto.WebhookResponse{Status: r.Status, Reason: r.Reason}
	if r.Status == domain.WebhookStatusSuccess {
		added := r.InterviewsAdded
		resp.InterviewsAdded = &added
	}
	return resp
}

// VerifySignature checks a hex HMAC-SHA256 of body under secret in constant time.
func VerifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := SignPayload(secret, body)
	return hmac.Equal([]byte(strings.ToLower(strings.TrimSpace(signature))), []byte(expected))
}

// SignPayload returns the signature VerifySignature expects. Used by tests and local tooling.
func SignPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
