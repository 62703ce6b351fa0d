package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrNomineeNotFound  = errors.New("nominee not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrAdminNotFound    = errors.New("admin not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAuthRequired       = errors.New("authentication required")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Lifecycle errors
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrNoAttendedNominees  = errors.New("no attended nominees found for this event")
	ErrUsernameExists      = errors.New("username already exists")
	ErrInvitationSendError = errors.New("failed to send invitation email")
)

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewPreconditionError creates a precondition error with a message
func NewPreconditionError(message string) error {
	return &CustomError{Err: ErrPreconditionFailed, Message: message}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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
