package validation

import (
	"strings"
	"unicode/utf8"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"

	"github.com/go-playground/validator/v10"
)

const (
	MaxJobTitleLength      = 255
	MaxCandidateNameLength = 255
	MaxKeySkills           = 20
	MaxDeviceIDLength      = 255
	MaxAnswerLength        = 10000
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateCreateInterviewRequest validates a job posting
func (v *Validator) ValidateCreateInterviewRequest(req *dto.CreateInterviewRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	title := strings.TrimSpace(req.JobTitle)
	if title == "" {
		errors = append(errors, domain.NewMissingFieldError("job_title"))
	} else if n := utf8.RuneCountInString(title); n > MaxJobTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("job_title", n, 1, MaxJobTitleLength))
	}

	if strings.TrimSpace(req.JobRequirements) == "" {
		errors = append(errors, domain.NewMissingFieldError("job_requirements"))
	}

	if len(req.KeySkills) > MaxKeySkills {
		errors = append(errors, domain.NewOutOfRangeError("key_skills", len(req.KeySkills), 0, MaxKeySkills))
	}
	for _, skill := range req.KeySkills {
		if strings.TrimSpace(skill) == "" {
			errors = append(errors, domain.NewInvalidFormatError("key_skills", skill))
			break
		}
	}

	return errors
}

// ValidateSubmitAnswersRequest validates a candidate submission
func (v *Validator) ValidateSubmitAnswersRequest(req *dto.SubmitAnswersRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		errors = append(errors, domain.NewMissingFieldError("candidate_name"))
	} else if n := utf8.RuneCountInString(name); n > MaxCandidateNameLength {
		errors = append(errors, domain.NewOutOfRangeError("candidate_name", n, 1, MaxCandidateNameLength))
	}

	email := strings.TrimSpace(req.CandidateEmail)
	if email == "" {
		errors = append(errors, domain.NewMissingFieldError("candidate_email"))
	} else if err := v.validate.Var(email, "email"); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("candidate_email", req.CandidateEmail))
	}

	if len(req.Answers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}
	for _, a := range req.Answers {
		if a.QuestionID <= 0 {
			errors = append(errors, domain.NewInvalidFormatError("answers.question_id", a.QuestionID))
			break
		}
		if utf8.RuneCountInString(a.Answer) > MaxAnswerLength {
			errors = append(errors, domain.NewOutOfRangeError("answers.answer", utf8.RuneCountInString(a.Answer), 0, MaxAnswerLength))
			break
		}
	}

	return errors
}

// ValidateCheckoutRequest validates a checkout request
func (v *Validator) ValidateCheckoutRequest(req *dto.CheckoutRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.ProductID) == "" {
		errors = append(errors, domain.NewMissingFieldError("product_id"))
	}
	errors = append(errors, v.validateRedirectURL("success_url", req.SuccessURL)...)
	errors = append(errors, v.validateRedirectURL("cancel_url", req.CancelURL)...)

	return errors
}

// ValidateDeviceID validates the anonymous device identifier header
func (v *Validator) ValidateDeviceID(deviceID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(deviceID) == "" {
		errors = append(errors, domain.NewMissingFieldError("device_id"))
	} else if len(deviceID) > MaxDeviceIDLength {
		errors = append(errors, domain.NewOutOfRangeError("device_id", len(deviceID), 1, MaxDeviceIDLength))
	}

	return errors
}

// ValidateAccessCode only checks presence; matching happens in the service
func (v *Validator) ValidateAccessCode(code string) domain.ValidationErrors {
	if strings.TrimSpace(code) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("code")}
	}
	return nil
}

func (v *Validator) validateRedirectURL(field, value string) domain.ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if err := v.validate.Var(value, "url"); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, value)}
	}
	return nil
}
