package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockInterviewService struct {
	CreateInterviewFunc func(ctx context.Context, deviceID string, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error)
	GetInterviewFunc    func(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error)
	SubmitAnswersFunc   func(ctx context.Context, interviewID string, req *dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error)
	GetResultsFunc      func(ctx context.Context, interviewID, accessCode string) (*dto.ResultsResponse, error)
}

func (m *MockInterviewService) CreateInterview(ctx context.Context, deviceID string, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error) {
	if m.CreateInterviewFunc != nil {
		return m.CreateInterviewFunc(ctx, deviceID, req)
	}
	panic("MockInterviewService.CreateInterviewFunc not implemented")
}
func (m *MockInterviewService) GetInterview(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error) {
	if m.GetInterviewFunc != nil {
		return m.GetInterviewFunc(ctx, interviewID)
	}
	panic("MockInterviewService.GetInterviewFunc not implemented")
}
func (m *MockInterviewService) SubmitAnswers(ctx context.Context, interviewID string, req *dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error) {
	if m.SubmitAnswersFunc != nil {
		return m.SubmitAnswersFunc(ctx, interviewID, req)
	}
	panic("MockInterviewService.SubmitAnswersFunc not implemented")
}
func (m *MockInterviewService) GetResults(ctx context.Context, interviewID, accessCode string) (*dto.ResultsResponse, error) {
	if m.GetResultsFunc != nil {
		return m.GetResultsFunc(ctx, interviewID, accessCode)
	}
	panic("MockInterviewService.GetResultsFunc not implemented")
}

type MockPaymentService struct {
	CreateCheckoutFunc func(ctx context.Context, deviceID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhookFunc  func(ctx context.Context, rawBody []byte, signature string) (*dto.WebhookResponse, error)
}

func (m *MockPaymentService) CreateCheckout(ctx context.Context, deviceID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, deviceID, req)
	}
	panic("MockPaymentService.CreateCheckoutFunc not implemented")
}
func (m *MockPaymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*dto.WebhookResponse, error) {
	if m.HandleWebhookFunc != nil {
		return m.HandleWebhookFunc(ctx, rawBody, signature)
	}
	panic("MockPaymentService.HandleWebhookFunc not implemented")
}

type MockCreditLedger struct {
	CheckAllowanceFunc func(ctx context.Context, deviceID string) (domain.Allowance, error)
	ConsumeFunc        func(ctx context.Context, deviceID string, kind domain.CreditKind) error
	BalanceFunc        func(ctx context.Context, deviceID string) (*dto.TokenBalanceResponse, error)
}

func (m *MockCreditLedger) CheckAllowance(ctx context.Context, deviceID string) (domain.Allowance, error) {
	if m.CheckAllowanceFunc != nil {
		return m.CheckAllowanceFunc(ctx, deviceID)
	}
	panic("MockCreditLedger.CheckAllowanceFunc not implemented")
}
func (m *MockCreditLedger) Consume(ctx context.Context, deviceID string, kind domain.CreditKind) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, deviceID, kind)
	}
	panic("MockCreditLedger.ConsumeFunc not implemented")
}
func (m *MockCreditLedger) Balance(ctx context.Context, deviceID string) (*dto.TokenBalanceResponse, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, deviceID)
	}
	panic("MockCreditLedger.BalanceFunc not implemented")
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func readJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}
