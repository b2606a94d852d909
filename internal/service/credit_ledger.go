package service

import (
	"context"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/logger"
	"ai-interviewer/internal/metrics"

	"go.uber.org/zap"
)

// CreditLedger decides whether a device may create an interview and records what it spent.
type CreditLedger interface {
	// CheckAllowance creates the device's balance row on first touch.
	CheckAllowance(ctx context.Context, deviceID string) (domain.Allowance, error)
	// Consume must run after the gated resource is written, ideally in the same transaction.
	Consume(ctx context.Context, deviceID string, kind domain.CreditKind) error
	// Balance never creates rows.
	Balance(ctx context.Context, deviceID string) (*dto.TokenBalanceResponse, error)
}

type creditLedger struct {
	repo           domain.TokenBalanceRepository
	freeTrialLimit int
	metrics        *metrics.Metrics
}

func NewCreditLedger(repo domain.TokenBalanceRepository, freeTrialLimit int, m *metrics.Metrics) CreditLedger {
	if freeTrialLimit < 1 {
		freeTrialLimit = domain.DefaultFreeTrialLimit
	}
	return &creditLedger{repo: repo, freeTrialLimit: freeTrialLimit, metrics: m}
}

func (l *creditLedger) CheckAllowance(ctx context.Context, deviceID string) (domain.Allowance, error) {
	balance, created, err := l.repo.CreateIfAbsent(ctx, deviceID)
	if err != nil {
		return domain.Allowance{}, domain.NewInternalError("Failed to check token balance", err)
	}
	if created {
		logger.Get().Info("Created token balance for new device", zap.String("device_id", deviceID))
	}

	allowance := balance.Resolve(l.freeTrialLimit)
	logger.Get().Debug("Checked credit allowance",
		zap.String("device_id", deviceID),
		zap.Bool("allowed", allowance.Allowed),
		zap.String("kind", string(allowance.Kind)))
	return allowance, nil
}

func (l *creditLedger) Consume(ctx context.Context, deviceID string, kind domain.CreditKind) error {
	var (
		consumed bool
		err      error
	)
	switch kind {
	case domain.CreditKindFreeTrial:
		consumed, err = l.repo.ConsumeFreeTrial(ctx, deviceID, l.freeTrialLimit)
	case domain.CreditKindPaid:
		consumed, err = l.repo.ConsumePaid(ctx, deviceID)
	default:
		return domain.NewInternalError("cannot consume credit of kind "+string(kind), nil)
	}
	if err != nil {
		return domain.NewInternalError("Failed to consume credit", err)
	}

	if !consumed {
		// 조건부 UPDATE가 0건이면 행이 없거나 다른 요청이 먼저 소진한 것
		current, getErr := l.repo.Get(ctx, deviceID)
		if getErr != nil {
			return domain.NewInternalError("Failed to consume credit", getErr)
		}
		if current == nil {
			return domain.NewInternalError("Failed to consume credit", domain.ErrBalanceNotFound).
				WithContext("device_id", deviceID)
		}
		return domain.NewPaymentRequiredError(NoInterviewsRemainingMessage)
	}

	switch kind {
	case domain.CreditKindFreeTrial:
		l.metrics.FreeTrialUsed()
	case domain.CreditKindPaid:
		l.metrics.TokenConsumed()
	}
	return nil
}

func (l *creditLedger) Balance(ctx context.Context, deviceID string) (*dto.TokenBalanceResponse, error) {
	balance, err := l.repo.Get(ctx, deviceID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get token balance", err)
	}
	if balance == nil {
		balance = &domain.TokenBalance{DeviceID: deviceID}
	}

	summary := balance.Summary(l.freeTrialLimit)
	return &dto.TokenBalanceResponse{
		Balance:             summary.Balance,
		FreeTrialsRemaining: summary.FreeTrialsRemaining,
	}, nil
}

