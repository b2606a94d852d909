package domain

import "context"

// TransactionManager runs fn inside a single store transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// InterviewRepository persists interviews. GetByID returns (nil, nil) when absent.
type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)
}

// SubmissionRepository persists submissions.
type SubmissionRepository interface {
	// Create returns ErrDuplicateSubmission when the (interview, email) pair exists.
	Create(ctx context.Context, submission *Submission) error
	ExistsForCandidate(ctx context.Context, interviewID, candidateEmail string) (bool, error)
	// ListByInterview orders by overall score descending, then submission time.
	ListByInterview(ctx context.Context, interviewID string) ([]*Submission, error)
}

// TokenBalanceRepository persists per-device credits.
// Consume operations are conditional updates and report whether a row changed.
type TokenBalanceRepository interface {
	Get(ctx context.Context, deviceID string) (*TokenBalance, error)
	// CreateIfAbsent returns the stored row, inserting a zero row first if needed.
	CreateIfAbsent(ctx context.Context, deviceID string) (*TokenBalance, bool, error)
	ConsumeFreeTrial(ctx context.Context, deviceID string, limit int) (bool, error)
	ConsumePaid(ctx context.Context, deviceID string) (bool, error)
	// AddCredits increments the balance, creating the row if it is absent.
	AddCredits(ctx context.Context, deviceID string, credits int) error
}

// PaymentTransactionRepository persists checkout sessions.
type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *PaymentTransaction) error
	GetByCheckoutID(ctx context.Context, checkoutID string) (*PaymentTransaction, error)
	// MarkCompleted moves a pending transaction to completed and reports whether it did.
	MarkCompleted(ctx context.Context, checkoutID string) (bool, error)
}
