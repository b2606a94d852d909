package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type interviewFixture struct {
	store   *memStore
	gateway *MockEvaluationGateway
	locker  *MockDeviceLocker
	cache   *MockCache
	reg     *prometheus.Registry
	svc     InterviewService
}

func newInterviewFixture(t *testing.T, withCache bool) *interviewFixture {
	t.Helper()
	store := newMemStore()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "ai-interviewer")
	f := &interviewFixture{
		store:   store,
		gateway: new(MockEvaluationGateway),
		locker:  new(MockDeviceLocker),
		reg:     reg,
	}

	var viewCache InterviewViewCache
	if withCache {
		f.cache = new(MockCache)
		viewCache = NewInterviewViewCache(f.cache, time.Hour)
	}

	f.svc = NewInterviewService(InterviewServiceDeps{
		Interviews:  memInterviewRepo{store},
		Submissions: memSubmissionRepo{store},
		TxManager:   passthroughTxManager{},
		Ledger:      NewCreditLedger(memTokenBalanceRepo{store}, domain.DefaultFreeTrialLimit, m),
		Gateway:     f.gateway,
		Locker:      f.locker,
		ViewCache:   viewCache,
		Metrics:     m,
	})
	return f
}

func (f *interviewFixture) expectLock(deviceID string) *bool {
	released := false
	f.locker.On("Lock", mock.Anything, deviceID).Return(func() { released = true }, nil)
	return &released
}

func backendRequest() *dto.CreateInterviewRequest {
	return &dto.CreateInterviewRequest{
		JobTitle:        "Backend Engineer",
		JobRequirements: "Go, PostgreSQL",
		KeySkills:       []string{"Go", "SQL"},
	}
}

func seedInterview(store *memStore, id, code string) *domain.Interview {
	iv := &domain.Interview{
		ID:              id,
		JobTitle:        "Backend Engineer",
		JobRequirements: "Go",
		KeySkills:       []string{"Go"},
		Questions:       domain.FallbackQuestions("Backend Engineer"),
		HRAccessCode:    code,
		CreatedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	store.interviews[id] = iv
	return iv
}

func TestCreateInterview_FreeTrialThenPaymentRequired(t *testing.T) {
	f := newInterviewFixture(t, false)
	released := f.expectLock("D")
	f.gateway.On("GenerateQuestions", mock.Anything, "Backend Engineer", "Go, PostgreSQL", []string{"Go", "SQL"}).
		Return(domain.FallbackQuestions("Backend Engineer")).Once()

	resp, err := f.svc.CreateInterview(context.Background(), "D", backendRequest())

	require.NoError(t, err)
	assert.Len(t, resp.Questions, domain.QuestionCount)
	assert.Len(t, resp.HRAccessCode, 8)
	assert.Equal(t, "/interview/"+resp.ID, resp.InterviewURL)
	assert.Equal(t, fmt.Sprintf("/results/%s?code=%s", resp.ID, resp.HRAccessCode), resp.ResultsURL)
	assert.Equal(t, "Relevant experience", resp.Questions[0].ExpectedFocus)
	assert.Equal(t, 1, f.store.balances["D"].FreeTrialUsed)
	assert.True(t, *released)
	assert.Equal(t, 1.0, counterValue(t, f.reg, "interviews_created_total"))

	_, err = f.svc.CreateInterview(context.Background(), "D", backendRequest())

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodePaymentRequired))
	assert.Equal(t, NoInterviewsRemainingMessage, err.(*domain.DomainError).Message)
	assert.Len(t, f.store.interviews, 1)
	f.gateway.AssertNumberOfCalls(t, "GenerateQuestions", 1)
}

func TestCreateInterview_PaidBalanceAllowsExactlyN(t *testing.T) {
	const n = 3
	f := newInterviewFixture(t, false)
	f.store.balances["D"] = &domain.TokenBalance{DeviceID: "D", Balance: n, FreeTrialUsed: 1}
	f.expectLock("D")
	f.gateway.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FallbackQuestions("Backend Engineer"))

	for i := 0; i < n; i++ {
		_, err := f.svc.CreateInterview(context.Background(), "D", backendRequest())
		require.NoError(t, err, "call %d", i+1)
	}
	_, err := f.svc.CreateInterview(context.Background(), "D", backendRequest())

	assert.True(t, domain.IsCode(err, domain.CodePaymentRequired))
	assert.Equal(t, 0, f.store.balances["D"].Balance)
	assert.Len(t, f.store.interviews, n)
	assert.Equal(t, float64(n), counterValue(t, f.reg, "tokens_consumed_total"))
}

func TestCreateInterview_ProceedsWhenLockUnavailable(t *testing.T) {
	f := newInterviewFixture(t, false)
	f.locker.On("Lock", mock.Anything, "D").Return(nil, domain.ErrLockNotAcquired)
	f.gateway.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FallbackQuestions("Backend Engineer"))

	resp, err := f.svc.CreateInterview(context.Background(), "D", backendRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateInterview_ConsumeFailureSurfaces(t *testing.T) {
	f := newInterviewFixture(t, false)
	f.expectLock("D")
	f.gateway.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FallbackQuestions("Backend Engineer"))
	f.store.failConsume = errors.New("deadlock detected")

	resp, err := f.svc.CreateInterview(context.Background(), "D", backendRequest())

	assert.Nil(t, resp)
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
	assert.Equal(t, 0.0, counterValue(t, f.reg, "interviews_created_total"))
}

func TestCreateInterview_PublicBaseURL(t *testing.T) {
	store := newMemStore()
	m := metrics.NewNop()
	gateway := new(MockEvaluationGateway)
	gateway.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FallbackQuestions("x"))
	svc := NewInterviewService(InterviewServiceDeps{
		Interviews:    memInterviewRepo{store},
		Submissions:   memSubmissionRepo{store},
		TxManager:     passthroughTxManager{},
		Ledger:        NewCreditLedger(memTokenBalanceRepo{store}, 1, m),
		Gateway:       gateway,
		Metrics:       m,
		PublicBaseURL: "https://interviewer.example/",
	})

	resp, err := svc.CreateInterview(context.Background(), "D", backendRequest())

	require.NoError(t, err)
	assert.Equal(t, "https://interviewer.example/interview/"+resp.ID, resp.InterviewURL)
}

func TestGetInterview_CandidateViewHidesExpectedFocus(t *testing.T) {
	f := newInterviewFixture(t, false)
	seedInterview(f.store, "iv1", "ABCD1234")

	view, err := f.svc.GetInterview(context.Background(), "iv1")
	require.NoError(t, err)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	var decoded struct {
		Questions []map[string]interface{} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Questions, domain.QuestionCount)
	for _, q := range decoded.Questions {
		assert.Len(t, q, 2)
		assert.Contains(t, q, "id")
		assert.Contains(t, q, "text")
		assert.NotContains(t, q, "expected_focus")
	}
}

func TestGetInterview_NotFound(t *testing.T) {
	f := newInterviewFixture(t, false)

	_, err := f.svc.GetInterview(context.Background(), "missing")

	assert.True(t, domain.IsCode(err, domain.CodeInterviewNotFound))
}

func TestGetInterview_Cache(t *testing.T) {
	t.Run("hit skips the store", func(t *testing.T) {
		f := newInterviewFixture(t, true)
		f.cache.On("Get", mock.Anything, "aiinterviewer:interview:candidate:iv1").
			Return(`{"id":"iv1","job_title":"Cached","questions":[{"id":1,"text":"Q"}]}`, nil)

		view, err := f.svc.GetInterview(context.Background(), "iv1")

		require.NoError(t, err)
		assert.Equal(t, "Cached", view.JobTitle)
		assert.Equal(t, 0, f.store.getInterviewCalls)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		f := newInterviewFixture(t, true)
		seedInterview(f.store, "iv1", "ABCD1234")
		f.cache.On("Get", mock.Anything, "aiinterviewer:interview:candidate:iv1").Return("", domain.ErrCacheMiss)
		f.cache.On("Set", mock.Anything, "aiinterviewer:interview:candidate:iv1", mock.AnythingOfType("string"), time.Hour).Return(nil)

		view, err := f.svc.GetInterview(context.Background(), "iv1")

		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", view.JobTitle)
		f.cache.AssertExpectations(t)
	})

	t.Run("cache failure is bypassed", func(t *testing.T) {
		f := newInterviewFixture(t, true)
		seedInterview(f.store, "iv1", "ABCD1234")
		f.cache.On("Get", mock.Anything, mock.Anything).Return("", errors.New("connection reset"))
		f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		view, err := f.svc.GetInterview(context.Background(), "iv1")

		require.NoError(t, err)
		assert.Equal(t, "iv1", view.ID)
	})
}

func goodEvaluation(score float64, rec domain.Recommendation) *domain.Evaluation {
	return &domain.Evaluation{
		Scores:         []domain.QuestionScore{{QuestionID: 1, Score: 4, Comment: "solid"}},
		OverallScore:   &score,
		Recommendation: &rec,
		Summary:        "Good candidate.",
	}
}

func submitRequest(email string) *dto.SubmitAnswersRequest {
	return &dto.SubmitAnswersRequest{
		CandidateName:  "Jane Doe",
		CandidateEmail: email,
		Answers:        []dto.AnswerRequest{{QuestionID: 1, Answer: "I built payment systems."}},
	}
}

func TestSubmitAnswers_OncePerEmail(t *testing.T) {
	f := newInterviewFixture(t, false)
	seedInterview(f.store, "iv1", "ABCD1234")
	f.gateway.On("EvaluateSubmission", mock.Anything, mock.Anything, mock.Anything).
		Return(goodEvaluation(4.2, domain.RecommendationRecommend)).Once()

	resp, err := f.svc.SubmitAnswers(context.Background(), "iv1", submitRequest("jane@example.com"))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, SubmissionThankYouMessage, resp.Message)

	_, err = f.svc.SubmitAnswers(context.Background(), "iv1", submitRequest("  Jane@Example.com "))

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeAlreadySubmitted))
	assert.Len(t, f.store.submissions, 1)
	f.gateway.AssertNumberOfCalls(t, "EvaluateSubmission", 1)
	assert.Equal(t, 1.0, counterValue(t, f.reg, "submissions_total"))
}

// racingSubmissionRepo reports no prior submission but loses the insert, as a concurrent request would.
type racingSubmissionRepo struct{ memSubmissionRepo }

func (racingSubmissionRepo) ExistsForCandidate(ctx context.Context, interviewID, candidateEmail string) (bool, error) {
	return false, nil
}

func (racingSubmissionRepo) Create(ctx context.Context, submission *domain.Submission) error {
	return fmt.Errorf("insert submission: %w", domain.ErrDuplicateSubmission)
}

func TestSubmitAnswers_UniqueConstraintIsConflict(t *testing.T) {
	store := newMemStore()
	seedInterview(store, "iv1", "ABCD1234")
	gateway := new(MockEvaluationGateway)
	gateway.On("EvaluateSubmission", mock.Anything, mock.Anything, mock.Anything).
		Return(goodEvaluation(3, domain.RecommendationMaybe))
	m := metrics.NewNop()
	svc := NewInterviewService(InterviewServiceDeps{
		Interviews:  memInterviewRepo{store},
		Submissions: racingSubmissionRepo{memSubmissionRepo{store}},
		TxManager:   passthroughTxManager{},
		Ledger:      NewCreditLedger(memTokenBalanceRepo{store}, 1, m),
		Gateway:     gateway,
		Metrics:     m,
	})

	_, err := svc.SubmitAnswers(context.Background(), "iv1", submitRequest("jane@example.com"))

	assert.True(t, domain.IsCode(err, domain.CodeAlreadySubmitted))
}

func TestSubmitAnswers_DefaultsWhenEvaluationOmitsFields(t *testing.T) {
	f := newInterviewFixture(t, false)
	seedInterview(f.store, "iv1", "ABCD1234")
	f.gateway.On("EvaluateSubmission", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Evaluation{Summary: "partial"})

	_, err := f.svc.SubmitAnswers(context.Background(), "iv1", submitRequest("sam@example.com"))
	require.NoError(t, err)

	require.Len(t, f.store.submissions, 1)
	for _, sub := range f.store.submissions {
		assert.Equal(t, 0.0, sub.OverallScore)
		assert.Equal(t, domain.RecommendationPending, sub.Recommendation)
		assert.Equal(t, "sam@example.com", sub.CandidateEmail)
	}
}

func TestSubmitAnswers_NotFound(t *testing.T) {
	f := newInterviewFixture(t, false)

	_, err := f.svc.SubmitAnswers(context.Background(), "missing", submitRequest("jane@example.com"))

	assert.True(t, domain.IsCode(err, domain.CodeInterviewNotFound))
	f.gateway.AssertNotCalled(t, "EvaluateSubmission", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetResults(t *testing.T) {
	f := newInterviewFixture(t, false)
	seedInterview(f.store, "iv1", "ABCD1234")
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, s := range []struct {
		email string
		score float64
		rec   domain.Recommendation
	}{
		{"c@example.com", 2.1, domain.RecommendationNotRecommended},
		{"a@example.com", 4.6, domain.RecommendationRecommend},
		{"b@example.com", 3.4, domain.RecommendationMaybe},
		{"d@example.com", 4.1, domain.RecommendationRecommend},
	} {
		id := fmt.Sprintf("s%d", i)
		f.store.submissions[id] = &domain.Submission{
			ID: id, InterviewID: "iv1", CandidateEmail: s.email, OverallScore: s.score,
			Recommendation: s.rec, SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	resp, err := f.svc.GetResults(context.Background(), "iv1", "ABCD1234")

	require.NoError(t, err)
	require.Len(t, resp.Submissions, 4)
	for i := 1; i < len(resp.Submissions); i++ {
		assert.GreaterOrEqual(t, resp.Submissions[i-1].OverallScore, resp.Submissions[i].OverallScore)
	}
	assert.Equal(t, "a@example.com", resp.Submissions[0].CandidateEmail)
	assert.Equal(t, dto.ResultsSummary{Total: 4, Recommended: 2, Maybe: 1, NotRecommended: 1}, resp.Summary)
	assert.Equal(t, "Relevant experience", resp.Interview.Questions[0].ExpectedFocus)
	assert.Equal(t, []string{"Go"}, resp.Interview.KeySkills)
}

func TestGetResults_Rejections(t *testing.T) {
	f := newInterviewFixture(t, false)
	seedInterview(f.store, "iv1", "ABCD1234")

	tests := []struct {
		name     string
		id       string
		code     string
		wantCode domain.ErrorCode
	}{
		{name: "wrong code", id: "iv1", code: "WRONG000", wantCode: domain.CodeForbidden},
		{name: "lower-case code is not a match", id: "iv1", code: "abcd1234", wantCode: domain.CodeForbidden},
		{name: "empty code", id: "iv1", code: "", wantCode: domain.CodeForbidden},
		{name: "missing interview", id: "nope", code: "ABCD1234", wantCode: domain.CodeInterviewNotFound},
		{name: "missing interview and wrong code", id: "nope", code: "WRONG000", wantCode: domain.CodeInterviewNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.GetResults(context.Background(), tt.id, tt.code)

			assert.Nil(t, resp)
			assert.True(t, domain.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}
