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
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Learning platform errors
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeQuestionNotFound   ErrorCode = "QUESTION_NOT_FOUND"
	CodeSubmissionNotFound ErrorCode = "SUBMISSION_NOT_FOUND"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodePersistence        ErrorCode = "PERSISTENCE_FAILURE"
	CodeLLMServiceError    ErrorCode = "LLM_SERVICE_ERROR"
)

// ErrDuplicateKey is returned by repositories when an insert violates a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
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

// WithContext attaches a key/value pair that is surfaced in the error response details.
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

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(CodeConflict, message, nil)
}

func NewUserNotFoundError(userID string) *DomainError {
	return NewError(CodeUserNotFound, "User not found", nil).WithContext("user_id", userID)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, "Question not found", nil).WithContext("question_id", questionID)
}

func NewSubmissionNotFoundError(submissionID string) *DomainError {
	return NewError(CodeSubmissionNotFound, "Submission not found", nil).WithContext("submission_id", submissionID)
}

func NewPersistenceError(message string, cause error) *DomainError {
	return NewError(CodePersistence, message, cause)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", cause)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned as a whole to the error handler, which renders a 400.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msg := v[0].Error()
	if len(v) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(v)-1)
	}
	return msg
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidFormat,
		Message: fmt.Sprintf("%s has an invalid format", field),
		Value:   value,
	}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("%s must be between %d and %d", field, min, max),
		Value:   value,
	}
}
