package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials indicates the backend rejected a username/password pair.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeMissingToken indicates a nominally successful sign-in that carried no token.
	ErrCodeMissingToken ErrorCode = "missing_token"
	// ErrCodeNetwork indicates a transport failure or an unusable response.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeAuthExpired indicates the backend rejected a bearer token.
	ErrCodeAuthExpired ErrorCode = "auth_expired"
	// ErrCodeUnauthenticated indicates a protected call was attempted without a session.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeUpstream indicates a non-2xx response from the backend that has no dedicated code.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeConflict indicates the requested transition is not allowed right now.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message, safe to show to the operator
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the upstream HTTP status when the error came from a response (optional)
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

func newf(code ErrorCode, format string, args ...any) *AppError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &AppError{Code: code, Message: msg}
}

// InvalidCredentials creates a new InvalidCredentials error.
func InvalidCredentials(message string) *AppError {
	return newf(ErrCodeInvalidCredentials, "%s", message)
}

// MissingToken creates a new MissingToken error.
func MissingToken(message string) *AppError {
	return newf(ErrCodeMissingToken, "%s", message)
}

// Network creates a new Network error.
func Network(message string) *AppError {
	return newf(ErrCodeNetwork, "%s", message)
}

// AuthExpired creates a new AuthExpired error.
func AuthExpired(message string) *AppError {
	return newf(ErrCodeAuthExpired, "%s", message)
}

// Unauthenticated creates a new Unauthenticated error.
func Unauthenticated(message string) *AppError {
	return newf(ErrCodeUnauthenticated, "%s", message)
}

// Upstream records a non-2xx response the client has no specific mapping for.
func Upstream(message string, status int) *AppError {
	e := newf(ErrCodeUpstream, "%s", message)
	e.Status = status
	return e
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return newf(ErrCodeNotFound, "%s", message)
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return newf(ErrCodeNotFound, format, args...)
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return newf(ErrCodeValidation, "%s", message)
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return newf(ErrCodeConflict, "%s", message)
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return newf(ErrCodeInternal, "%s", message)
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return newf(ErrCodeInternal, format, args...)
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	return isCode(err, ErrCodeInvalidCredentials)
}

// IsMissingToken checks if an error is a MissingToken error.
func IsMissingToken(err error) bool {
	return isCode(err, ErrCodeMissingToken)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// IsAuthExpired checks if an error is an AuthExpired error.
func IsAuthExpired(err error) bool {
	return isCode(err, ErrCodeAuthExpired)
}

// IsUnauthenticated checks if an error is an Unauthenticated error.
func IsUnauthenticated(err error) bool {
	return isCode(err, ErrCodeUnauthenticated)
}

// IsUpstream checks if an error is an Upstream error.
func IsUpstream(err error) bool {
	return isCode(err, ErrCodeUpstream)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the upstream HTTP status recorded on an AppError, or 0.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// UserMessage returns the operator-facing message of the outermost AppError,
// without the wrapped cause. Non-AppErrors yield fallback.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
