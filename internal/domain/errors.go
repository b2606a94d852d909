package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	CodeUpstream           ErrorCode = "UPSTREAM_ERROR"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Interview and billing errors
	CodeInterviewNotFound ErrorCode = "INTERVIEW_NOT_FOUND"
	CodeAlreadySubmitted  ErrorCode = "ALREADY_SUBMITTED"
	CodePaymentRequired   ErrorCode = "PAYMENT_REQUIRED"
	CodeInvalidProduct    ErrorCode = "INVALID_PRODUCT"
)

var (
	// ErrDuplicateSubmission is returned by the store when (interview, email) already has a submission.
	ErrDuplicateSubmission = errors.New("submission already exists for candidate")
	// ErrBalanceNotFound signals a consume against a device that was never checked.
	ErrBalanceNotFound = errors.New("token balance not found")
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair that is exposed as error details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInterviewNotFoundError(interviewID string) *DomainError {
	return NewError(CodeInterviewNotFound, "Interview not found", nil).WithContext("interview_id", interviewID)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewPaymentRequiredError(message string) *DomainError {
	return NewError(CodePaymentRequired, message, nil)
}

func NewConflictError(message string, cause error) *DomainError {
	return NewError(CodeConflict, message, cause)
}

func NewAlreadySubmittedError(cause error) *DomainError {
	return NewError(CodeAlreadySubmitted, "You have already submitted answers for this interview", cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInvalidProductError(productKey string) *DomainError {
	return NewError(CodeInvalidProduct, "Invalid product", nil).WithContext("product_id", productKey)
}

func NewUnauthenticatedError(message string) *DomainError {
	return NewError(CodeUnauthenticated, message, nil)
}

func NewServiceUnavailableError(message string) *DomainError {
	return NewError(CodeServiceUnavailable, message, nil)
}

// NewUpstreamError wraps a failure of an external collaborator.
func NewUpstreamError(message string, cause error) *DomainError {
	return NewError(CodeUpstream, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// IsCode reports whether err is a DomainError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
