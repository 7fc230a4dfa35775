// Package apperrors defines the error taxonomy shared by use cases and handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind groups errors by how the caller is expected to react.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR"
	KindConfiguration   Kind = "CONFIGURATION_ERROR"
	KindExternalService Kind = "EXTERNAL_SERVICE_ERROR"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Code identifies a concrete failure inside a Kind.
type Code string

const (
	CodeInvalidPayload    Code = "INVALID_PAYLOAD"
	CodeMissingField      Code = "MISSING_FIELD"
	CodeInvalidEmail      Code = "INVALID_EMAIL"
	CodeMissingSignature  Code = "MISSING_SIGNATURE"
	CodeInvalidSignature  Code = "INVALID_SIGNATURE"
	CodeCredentialInvalid Code = "CREDENTIAL_INVALID"
	CodeProviderFailed    Code = "PROVIDER_FAILED"
	CodeDatabaseFailed    Code = "DATABASE_FAILED"
	CodeSessionNotFound   Code = "SESSION_NOT_FOUND"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeUnexpected        Code = "UNEXPECTED"
)

// AppError carries a user-facing message plus the diagnostic cause.
type AppError struct {
	Kind      Kind      `json:"kind"`
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"-"`
	Err       error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s[%s]: %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func newError(kind Kind, code Code, status int, message string, err error) *AppError {
	appErr := &AppError{
		Kind:      kind,
		Code:      code,
		Message:   message,
		Status:    status,
		Err:       err,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// Validation is a bad request shape or value, surfaced with 400.
func Validation(code Code, message string) *AppError {
	return newError(KindValidation, code, http.StatusBadRequest, message, nil)
}

// Configuration is a missing or malformed credential. Only surfaced where no
// fallback exists, as 503.
func Configuration(message string, err error) *AppError {
	return newError(KindConfiguration, CodeCredentialInvalid, http.StatusServiceUnavailable, message, err)
}

// ExternalService is a failed provider call surfaced to the caller.
func ExternalService(message string, err error) *AppError {
	return newError(KindExternalService, CodeProviderFailed, http.StatusInternalServerError, message, err)
}

// Signature is a webhook verification failure. It is a client error.
func Signature(code Code, message string, err error) *AppError {
	return newError(KindExternalService, code, http.StatusBadRequest, message, err)
}

// Database is a store failure that the caller cannot work around.
func Database(message string, err error) *AppError {
	return newError(KindExternalService, CodeDatabaseFailed, http.StatusInternalServerError, message, err)
}

// NotFound reports a missing resource.
func NotFound(code Code, message string) *AppError {
	return newError(KindValidation, code, http.StatusNotFound, message, nil)
}

// Conflict reports an operation that is not allowed in the current state.
func Conflict(code Code, message string) *AppError {
	return newError(KindValidation, code, http.StatusConflict, message, nil)
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(message string, err error) *AppError {
	return newError(KindInternal, CodeUnexpected, http.StatusInternalServerError, message, err)
}

// Normalize always yields an *AppError, wrapping unknown errors as internal.
func Normalize(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Unexpected error", err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
