// Package apperror defines the error taxonomy shared by every layer.
//
// CATEGORIES AND KINDS:
// Each AppError carries a category (Err) that decides how a caller reacts,
// e.g. an HTTP handler maps ErrConflict to 409. Some errors also carry a Kind,
// the precise condition, so a caller can tell EmailTaken from UsernameTaken
// even though both are conflicts. errors.Is matches either one:
//
//	errors.Is(err, apperror.ErrConflict)   // true
//	errors.Is(err, apperror.ErrEmailTaken) // true
package apperror

import (
	"errors"
	"fmt"
)

// Categories.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("unavailable")
)

// Kinds raised by the auth flow.
var (
	ErrPasswordMismatch  = errors.New("password mismatch")
	ErrEmailTaken        = errors.New("email taken")
	ErrUsernameTaken     = errors.New("username taken")
	ErrEmailNotFound     = errors.New("email not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

type AppError struct {
	Err     error  // category
	Kind    error  // Optional: specific condition within the category
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the category and the kind to errors.Is and errors.As.
func (e *AppError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Kind}
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

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// ConstraintViolation reports a row rejected by a store constraint
// (unique, foreign key, check).
func ConstraintViolation(resource, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s: %s", resource, message),
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

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Unavailable wraps a connection-level store failure. The cause is kept in
// the message for logs; handlers never show it to clients.
func Unavailable(cause error) *AppError {
	return &AppError{
		Err:     ErrUnavailable,
		Message: fmt.Sprintf("store unavailable: %v", cause),
	}
}

func PasswordMismatch() *AppError {
	return &AppError{
		Err:     ErrValidation,
		Kind:    ErrPasswordMismatch,
		Message: "passwords do not match",
		Field:   "password2",
	}
}

func EmailTaken(email string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Kind:    ErrEmailTaken,
		Message: fmt.Sprintf("email %s is already registered", email),
		Field:   "email",
	}
}

func UsernameTaken(username string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Kind:    ErrUsernameTaken,
		Message: fmt.Sprintf("username %s is already taken", username),
		Field:   "username",
	}
}

func EmailNotFound(email string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Kind:    ErrEmailNotFound,
		Message: fmt.Sprintf("no account registered with email %s", email),
		Field:   "email",
	}
}

func IncorrectPassword() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Kind:    ErrIncorrectPassword,
		Message: "incorrect password",
		Field:   "password",
	}
}

// Code returns a stable, machine-readable name for the most specific
// condition in err's chain, or "" when err carries no known kind.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, ErrEmailNotFound):
		return "email_not_found"
	case errors.Is(err, ErrIncorrectPassword):
		return "incorrect_password"
	}
	return ""
}
