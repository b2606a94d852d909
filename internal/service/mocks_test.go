package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-interviewer/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockEvaluationGateway ---
type MockEvaluationGateway struct {
	mock.Mock
}

func (m *MockEvaluationGateway) GenerateQuestions(ctx context.Context, jobTitle, jobRequirements string, keySkills []string) []domain.Question {
	args := m.Called(ctx, jobTitle, jobRequirements, keySkills)
	return args.Get(0).([]domain.Question)
}

func (m *MockEvaluationGateway) EvaluateSubmission(ctx context.Context, interview *domain.Interview, answers []domain.Answer) *domain.Evaluation {
	args := m.Called(ctx, interview, answers)
	return args.Get(0).(*domain.Evaluation)
}

// --- MockPaymentProvider ---
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}

// --- MockDeviceLocker ---
type MockDeviceLocker struct {
	mock.Mock
}

func (m *MockDeviceLocker) Lock(ctx context.Context, deviceID string) (func(), error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

// --- in-memory store ---

// memStore backs the repository fakes. Conditional updates mirror the SQL WHERE clauses.
type memStore struct {
	mu           sync.Mutex
	interviews   map[string]*domain.Interview
	submissions  map[string]*domain.Submission
	balances     map[string]*domain.TokenBalance
	transactions map[string]*domain.PaymentTransaction

	getInterviewCalls int
	failConsume       error
}

func newMemStore() *memStore {
	return &memStore{
		interviews:   map[string]*domain.Interview{},
		submissions:  map[string]*domain.Submission{},
		balances:     map[string]*domain.TokenBalance{},
		transactions: map[string]*domain.PaymentTransaction{},
	}
}

type memInterviewRepo struct{ s *memStore }

func (r memInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *interview
	r.s.interviews[interview.ID] = &cp
	return nil
}

func (r memInterviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.getInterviewCalls++
	iv, ok := r.s.interviews[id]
	if !ok {
		return nil, nil
	}
	cp := *iv
	return &cp, nil
}

type memSubmissionRepo struct{ s *memStore }

func (r memSubmissionRepo) Create(ctx context.Context, submission *domain.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.submissions {
		if existing.InterviewID == submission.InterviewID && existing.CandidateEmail == submission.CandidateEmail {
			return domain.ErrDuplicateSubmission
		}
	}
	cp := *submission
	r.s.submissions[submission.ID] = &cp
	return nil
}

func (r memSubmissionRepo) ExistsForCandidate(ctx context.Context, interviewID, candidateEmail string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.submissions {
		if existing.InterviewID == interviewID && existing.CandidateEmail == domain.NormalizeEmail(candidateEmail) {
			return true, nil
		}
	}
	return false, nil
}

func (r memSubmissionRepo) ListByInterview(ctx context.Context, interviewID string) ([]*domain.Submission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Submission
	for _, sub := range r.s.submissions {
		if sub.InterviewID == interviewID {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OverallScore != out[j].OverallScore {
			return out[i].OverallScore > out[j].OverallScore
		}
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

type memTokenBalanceRepo struct{ s *memStore }

func (r memTokenBalanceRepo) Get(ctx context.Context, deviceID string) (*domain.TokenBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.balances[deviceID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r memTokenBalanceRepo) CreateIfAbsent(ctx context.Context, deviceID string) (*domain.TokenBalance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.balances[deviceID]; ok {
		cp := *b
		return &cp, false, nil
	}
	b := &domain.TokenBalance{DeviceID: deviceID}
	r.s.balances[deviceID] = b
	cp := *b
	return &cp, true, nil
}

func (r memTokenBalanceRepo) ConsumeFreeTrial(ctx context.Context, deviceID string, limit int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failConsume != nil {
		return false, r.s.failConsume
	}
	b, ok := r.s.balances[deviceID]
	if !ok || b.FreeTrialUsed >= limit {
		return false, nil
	}
	b.FreeTrialUsed++
	return true, nil
}

func (r memTokenBalanceRepo) ConsumePaid(ctx context.Context, deviceID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failConsume != nil {
		return false, r.s.failConsume
	}
	b, ok := r.s.balances[deviceID]
	if !ok || b.Balance <= 0 {
		return false, nil
	}
	b.Balance--
	return true, nil
}

func (r memTokenBalanceRepo) AddCredits(ctx context.Context, deviceID string, credits int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.balances[deviceID]
	if !ok {
		r.s.balances[deviceID] = &domain.TokenBalance{DeviceID: deviceID, Balance: credits}
		return nil
	}
	b.Balance += credits
	return nil
}

type memPaymentRepo struct{ s *memStore }

func (r memPaymentRepo) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *tx
	r.s.transactions[tx.CheckoutID] = &cp
	return nil
}

func (r memPaymentRepo) GetByCheckoutID(ctx context.Context, checkoutID string) (*domain.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[checkoutID]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r memPaymentRepo) MarkCompleted(ctx context.Context, checkoutID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[checkoutID]
	if !ok || tx.Status != domain.PaymentStatusPending {
		return false, nil
	}
	tx.Status = domain.PaymentStatusCompleted
	return true, nil
}

// passthroughTxManager runs fn directly; rollback is covered by the repository tests.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
