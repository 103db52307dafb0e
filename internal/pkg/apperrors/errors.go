package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("operation illegal in current state")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Admission errors
	ErrCapacityExceeded = errors.New("participant limit reached")

	// Collaborator errors
	ErrDependency = errors.New("dependency unavailable")
)

// Event errors
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrRequestNotFound = errors.New("participation request not found")
)

// User and category errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCompilationNotFound = errors.New("compilation not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
)

// NewNotFoundError creates a new custom error for a missing entity with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for business-rule violations with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidation,
		Message: message,
	}
}

// NewCapacityExceededError creates a new custom error for a reached participant limit
func NewCapacityExceededError(message string) error {
	return &CustomError{
		Err:     ErrCapacityExceeded,
		Message: message,
	}
}

// NewDependencyError creates a new custom error for a failing collaborator
func NewDependencyError(message string) error {
	return &CustomError{
		Err:     ErrDependency,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
