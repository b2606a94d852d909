package middleware

import (
	"errors"
	"net/http"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-validation error.
// Detail repeats Message for clients that only read `detail`.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Detail  string                 `json:"detail"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected field.
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Detail  string                   `json:"detail"`
	Errors  []domain.ValidationError `json:"errors"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:          http.StatusNotFound,
	domain.CodeInterviewNotFound: http.StatusNotFound,
	domain.CodeForbidden:         http.StatusForbidden,
	domain.CodePaymentRequired:   http.StatusPaymentRequired,
	domain.CodeUnauthenticated:   http.StatusUnauthorized,

	// 중복 제출은 409 가 아니라 400 으로 응답한다
	domain.CodeConflict:         http.StatusBadRequest,
	domain.CodeAlreadySubmitted: http.StatusBadRequest,

	domain.CodeInvalidInput:   http.StatusBadRequest,
	domain.CodeInvalidProduct: http.StatusBadRequest,
	domain.CodeValidation:     http.StatusBadRequest,
	domain.CodeMissingField:   http.StatusBadRequest,
	domain.CodeInvalidFormat:  http.StatusBadRequest,
	domain.CodeOutOfRange:     http.StatusBadRequest,

	domain.CodeServiceUnavailable: http.StatusServiceUnavailable,
	domain.CodeUpstream:           http.StatusBadGateway,
	domain.CodeInternal:           http.StatusInternalServerError,
}

// StatusFor maps a domain error code to its HTTP status. Unknown codes are 500.
func StatusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders handler errors. Install it as fiber.Config.ErrorHandler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
		)

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Info("Request validation failed", zap.Int("error_count", len(validationErrs)))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Detail:  validationErrs.Error(),
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := StatusFor(domainErr.Code)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.Int("status", status),
				zap.Error(domainErr.Cause),
			}
			if status >= http.StatusInternalServerError {
				log.Error(domainErr.Message, fields...)
			} else {
				log.Info(domainErr.Message, fields...)
			}
			return writeError(c, status, string(domainErr.Code), domainErr.Message, domainErr.Context)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("HTTP error", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return writeError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message, nil)
		}

		log.Error("Unhandled error", zap.Error(err))
		return writeError(c, http.StatusInternalServerError, string(domain.CodeInternal), "Internal server error", nil)
	}
}

func writeError(c *fiber.Ctx, status int, code, message string, details map[string]interface{}) error {
	resp := ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Detail:  message,
	}
	if len(details) > 0 {
		resp.Details = details
	}
	return c.Status(status).JSON(resp)
}
