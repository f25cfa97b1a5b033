// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes
// with errors.Is. The sentinels classify the failure, the AppError wrapper
// carries the human-readable message (and optionally the offending field).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation error")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrEmptyCart      = errors.New("empty cart")
)

type AppError struct {
	Err     error  // sentinel classifying the error
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized covers every 401 case: missing token, unknown token, and
// failed login. The message stays generic on purpose — the response must
// not reveal whether an email exists or which credential part was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// InvalidCredentials is the single error for both unknown-email and
// wrong-password logins.
func InvalidCredentials() *AppError {
	return Unauthorized("invalid credentials")
}

// DuplicateEmail is returned by registration when the email is already
// taken, compared case-insensitively.
func DuplicateEmail() *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: "email already registered",
	}
}

// EmptyCart is a user-facing rejection of checkout, not a server error.
func EmptyCart() *AppError {
	return &AppError{
		Err:     ErrEmptyCart,
		Message: "cart is empty",
	}
}
