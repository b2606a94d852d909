package domain

import "time"

// CreditKind says which pool an allowed interview draws from.
type CreditKind string

const (
	CreditKindFreeTrial CreditKind = "free_trial"
	CreditKindPaid      CreditKind = "paid"
	CreditKindNone      CreditKind = "none"
)

// DefaultFreeTrialLimit is the number of free interviews per device.
const DefaultFreeTrialLimit = 1

// TokenBalance is the per-device credit record, created lazily.
type TokenBalance struct {
	DeviceID      string
	Balance       int
	FreeTrialUsed int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Allowance is the answer to "may this device create an interview now".
type Allowance struct {
	Allowed bool
	Kind    CreditKind
}

// Resolve applies the allowance rule: free trial first, then paid balance.
func (b *TokenBalance) Resolve(freeTrialLimit int) Allowance {
	if b.FreeTrialUsed < freeTrialLimit {
		return Allowance{Allowed: true, Kind: CreditKindFreeTrial}
	}
	if b.Balance > 0 {
		return Allowance{Allowed: true, Kind: CreditKindPaid}
	}
	return Allowance{Allowed: false, Kind: CreditKindNone}
}

// TokenSummary is the client-facing view of a device's credits.
type TokenSummary struct {
	Balance             int
	FreeTrialsRemaining int
}

func (b *TokenBalance) Summary(freeTrialLimit int) TokenSummary {
	remaining := freeTrialLimit - b.FreeTrialUsed
	if remaining < 0 {
		remaining = 0
	}
	return TokenSummary{Balance: b.Balance, FreeTrialsRemaining: remaining}
}
