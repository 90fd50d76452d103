package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so callers can compare against the
// predefined values even after Clone.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Storage reports a persistence failure. The underlying error text is appended
// to the message so the caller sees it verbatim.
func Storage(err error, message string) *Error {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", message, err.Error())
	}
	return &Error{Code: ErrInternal.Code, Status: ErrInternal.Status, Message: msg, Err: err}
}

// Invalid builds a validation error pointing at a single field.
func Invalid(field, message string) *Error {
	return &Error{Code: ErrValidation.Code, Status: ErrValidation.Status, Message: message, Field: field}
}

// Predefined errors for common scenarios.
var (
	ErrLoginFailed        = New("LOGIN_FAILED", http.StatusUnauthorized, "Login failed. Please check your name and phone number.")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrAttendanceDisabled = New("ATTENDANCE_DISABLED", http.StatusConflict, "Attendance is currently disabled by the teacher.")
	ErrNoActiveLecture    = New("NO_ACTIVE_LECTURE", http.StatusConflict, "No active lecture session.")
	ErrRegistrationClosed = New("REGISTRATION_CLOSED", http.StatusForbidden, "Teacher self-registration is disabled. Please contact your HOD.")
	ErrSessionNotFound    = New("SESSION_NOT_FOUND", http.StatusUnauthorized, "not logged in")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
