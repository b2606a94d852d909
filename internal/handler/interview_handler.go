package handler

import (
	"strings"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/logger"
	"ai-interviewer/internal/middleware"
	"ai-interviewer/internal/service"
	"ai-interviewer/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InterviewHandler handles interview-related HTTP requests
type InterviewHandler struct {
	service   service.InterviewService
	validator *validation.Validator
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(service service.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateInterview godoc
// @Summary Create an interview
// @Description Generates six questions for a job posting and consumes one credit of the device
// @Tags interviews
// @Accept json
// @Produce json
// @Param X-Device-Id header string true "Anonymous device identifier"
// @Param request body dto.CreateInterviewRequest true "Job posting"
// @Success 201 {object} dto.CreateInterviewResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 402 {object} middleware.ErrorResponse "No interviews remaining"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /interviews [post]
func (h *InterviewHandler) CreateInterview(c *fiber.Ctx) error {
	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateCreateInterviewRequest(&req); len(errs) > 0 {
		return errs
	}

	deviceID := middleware.DeviceID(c)
	resp, err := h.service.CreateInterview(c.Context(), deviceID, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetInterview godoc
// @Summary Get an interview for a candidate
// @Description Returns the job title and questions without evaluator hints
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} dto.CandidateInterviewResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c *fiber.Ctx) error {
	resp, err := h.service.GetInterview(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswers godoc
// @Summary Submit candidate answers
// @Description Evaluates and stores the answers of one candidate
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "Interview ID"
// @Param request body dto.SubmitAnswersRequest true "Candidate answers"
// @Success 200 {object} dto.SubmitAnswersResponse
// @Failure 400 {object} middleware.ErrorResponse "Validation failure or duplicate submission"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id}/submit [post]
func (h *InterviewHandler) SubmitAnswers(c *fiber.Ctx) error {
	var req dto.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateSubmitAnswersRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswers(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResults godoc
// @Summary Get interview results
// @Description Returns every evaluated submission, best overall score first. Requires the HR access code.
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Param code query string true "HR access code"
// @Success 200 {object} dto.ResultsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Invalid access code"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id}/results [get]
func (h *InterviewHandler) GetResults(c *fiber.Ctx) error {
	code, _ := c.Locals(middleware.LocalsAccessCode).(string)
	if code == "" {
		code = c.Query("code")
	}

	resp, err := h.service.GetResults(c.Context(), c.Params("id"), code)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// invalidBody turns a body parse failure into a 400 validation response
func invalidBody(err error) error {
	logger.Get().Debug("Failed to parse request body", zap.Error(err))
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return domain.ValidationErrors{{
		Field:   "body",
		Code:    domain.CodeInvalidFormat,
		Message: "invalid request body: " + msg,
	}}
}
