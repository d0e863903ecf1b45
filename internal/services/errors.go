package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes service failures.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeBusiness     ErrorType = "BUSINESS_ERROR"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

// ServiceError is the error type returned from the service layer. It
// carries a machine-readable code and the HTTP status handlers should
// respond with.
type ServiceError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates an error for invalid input.
func NewValidationError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(resource string) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

// NewConflictError creates an error for a state conflict.
func NewConflictError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewUnauthorizedError creates an error for missing or bad credentials.
func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates an error for an action the caller is not
// allowed to perform.
func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewBusinessError creates an error for a violated business rule.
func NewBusinessError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeBusiness,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// GetServiceError extracts a ServiceError from err, wrapping unknown
// errors as internal.
func GetServiceError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return NewInternalError("An unexpected error occurred", err)
}

// IsNotFoundError reports whether err is a not-found service error.
func IsNotFoundError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Type == ErrorTypeNotFound
}

// IsValidationError reports whether err is a validation service error.
func IsValidationError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Type == ErrorTypeValidation
}

// IsForbiddenError reports whether err is a forbidden service error.
func IsForbiddenError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Type == ErrorTypeForbidden
}

// IsConflictError reports whether err is a conflict service error.
func IsConflictError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Type == ErrorTypeConflict
}
