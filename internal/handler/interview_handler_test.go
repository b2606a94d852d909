package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/handler"
	"ai-interviewer/internal/logger"
	"ai-interviewer/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupInterviewApp(svc *MockInterviewService) *fiber.App {
	h := handler.NewInterviewHandler(svc)
	vm := middleware.NewValidationMiddleware()

	app := newApp()
	app.Post("/interviews", middleware.RequireDeviceID(), h.CreateInterview)
	app.Get("/interviews/:id", h.GetInterview)
	app.Post("/interviews/:id/submit", h.SubmitAnswers)
	app.Get("/interviews/:id/results", vm.ValidateAccessCode(), h.GetResults)
	return app
}

func validCreateRequest() dto.CreateInterviewRequest {
	return dto.CreateInterviewRequest{
		JobTitle:        "Backend Engineer",
		JobRequirements: "Go, PostgreSQL",
		KeySkills:       []string{"Go", "SQL"},
	}
}

func TestInterviewHandler_CreateInterview(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockInterviewService{}
		var gotDevice string
		svc.CreateInterviewFunc = func(ctx context.Context, deviceID string, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error) {
			gotDevice = deviceID
			assert.Equal(t, "Backend Engineer", req.JobTitle)
			return &dto.CreateInterviewResponse{
				ID:           "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
				HRAccessCode: "ABCDEFGH",
				Questions:    make([]dto.QuestionResponse, 6),
			}, nil
		}
		app := setupInterviewApp(svc)
		core, logs := observer.New(zap.InfoLevel)
		defer logger.Set(zap.New(core))()

		req := jsonRequest(t, http.MethodPost, "/interviews", validCreateRequest())
		req.Header.Set(middleware.HeaderDeviceID, "device-1")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "device-1", gotDevice)
		// 생성 로그는 service 에서 한 번만 남긴다
		assert.Zero(t, logs.FilterMessage("Interview created").Len())
		var body dto.CreateInterviewResponse
		readJSON(t, resp, &body)
		assert.Equal(t, "ABCDEFGH", body.HRAccessCode)
		assert.Len(t, body.Questions, 6)
	})

	t.Run("Missing device id", func(t *testing.T) {
		app := setupInterviewApp(&MockInterviewService{})

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/interviews", validCreateRequest()))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Invalid body", func(t *testing.T) {
		app := setupInterviewApp(&MockInterviewService{})

		req := httptest.NewRequest(http.MethodPost, "/interviews", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.HeaderDeviceID, "device-1")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var body middleware.ValidationErrorResponse
		readJSON(t, resp, &body)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "body", body.Errors[0].Field)
	})

	t.Run("Missing title never reaches the service", func(t *testing.T) {
		app := setupInterviewApp(&MockInterviewService{})
		payload := validCreateRequest()
		payload.JobTitle = "  "

		req := jsonRequest(t, http.MethodPost, "/interviews", payload)
		req.Header.Set(middleware.HeaderDeviceID, "device-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("No credit left", func(t *testing.T) {
		svc := &MockInterviewService{
			CreateInterviewFunc: func(ctx context.Context, deviceID string, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error) {
				return nil, domain.NewPaymentRequiredError("No interviews remaining. Please purchase more interviews.")
			},
		}
		app := setupInterviewApp(svc)

		req := jsonRequest(t, http.MethodPost, "/interviews", validCreateRequest())
		req.Header.Set(middleware.HeaderDeviceID, "device-1")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
		var body middleware.ErrorResponse
		readJSON(t, resp, &body)
		assert.Equal(t, "No interviews remaining. Please purchase more interviews.", body.Detail)
	})
}

func TestInterviewHandler_GetInterview(t *testing.T) {
	svc := &MockInterviewService{
		GetInterviewFunc: func(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error) {
			if interviewID != "known" {
				return nil, domain.NewInterviewNotFoundError(interviewID)
			}
			return &dto.CandidateInterviewResponse{
				ID:        interviewID,
				JobTitle:  "Backend Engineer",
				Questions: []dto.CandidateQuestionResponse{{ID: 1, Text: "Why Go?"}},
			}, nil
		},
	}
	app := setupInterviewApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/interviews/known", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	readJSON(t, resp, &body)
	questions := body["questions"].([]interface{})
	require.Len(t, questions, 1)
	assert.NotContains(t, questions[0].(map[string]interface{}), "expected_focus")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/interviews/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInterviewHandler_SubmitAnswers(t *testing.T) {
	validSubmit := dto.SubmitAnswersRequest{
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
		Answers:        []dto.AnswerRequest{{QuestionID: 1, Answer: "Because."}},
	}

	tests := []struct {
		name       string
		body       dto.SubmitAnswersRequest
		svcErr     error
		wantStatus int
	}{
		{name: "Success", body: validSubmit, wantStatus: fiber.StatusOK},
		{name: "Duplicate", body: validSubmit, svcErr: domain.NewAlreadySubmittedError(nil), wantStatus: fiber.StatusBadRequest},
		{name: "Missing interview", body: validSubmit, svcErr: domain.NewInterviewNotFoundError("x"), wantStatus: fiber.StatusNotFound},
		{
			name: "Invalid email",
			body: dto.SubmitAnswersRequest{
				CandidateName:  "Jane Doe",
				CandidateEmail: "not-an-email",
				Answers:        validSubmit.Answers,
			},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "No answers",
			body:       dto.SubmitAnswersRequest{CandidateName: "Jane Doe", CandidateEmail: "jane@example.com"},
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &MockInterviewService{
				SubmitAnswersFunc: func(ctx context.Context, interviewID string, req *dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error) {
					called = true
					assert.Equal(t, "iv-1", interviewID)
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return &dto.SubmitAnswersResponse{Success: true, Message: "Thank you"}, nil
				},
			}
			app := setupInterviewApp(svc)

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/interviews/iv-1/submit", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusOK {
				var body dto.SubmitAnswersResponse
				readJSON(t, resp, &body)
				assert.True(t, body.Success)
			}
			if tt.svcErr == nil && tt.wantStatus != fiber.StatusOK {
				assert.False(t, called, "invalid requests must not reach the service")
			}
		})
	}
}

func TestInterviewHandler_GetResults(t *testing.T) {
	svc := &MockInterviewService{
		GetResultsFunc: func(ctx context.Context, interviewID, accessCode string) (*dto.ResultsResponse, error) {
			if accessCode != "GOODCODE" {
				return nil, domain.NewForbiddenError("Invalid access code")
			}
			return &dto.ResultsResponse{
				Interview:   dto.InterviewDetailResponse{ID: interviewID},
				Submissions: []dto.SubmissionResponse{},
				Summary:     dto.ResultsSummary{},
			}, nil
		},
	}
	app := setupInterviewApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/interviews/iv-1/results?code=GOODCODE", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body dto.ResultsResponse
	readJSON(t, resp, &body)
	assert.Equal(t, "iv-1", body.Interview.ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/interviews/iv-1/results?code=WRONG", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/interviews/iv-1/results", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
