// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the web frontend.

It provides a rich error type that bridges the gap between failures of the remote
KryptoTracker API (validation, authentication, server and network errors) and what
a screen shows to the user.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Details: The ordered list of field-level messages, rendered one line each.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the API facade is an [AppError], so views never see raw
transport errors.
*/
package apperr

import (
	"errors"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeRejected     = "REJECTED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeServer       = "SERVER_ERROR"
	CodeNetwork      = "NETWORK_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
)

// AppError is the canonical error type of the web frontend.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never shown to users
// to avoid leaking internal implementation details (e.g., dial errors).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "VALIDATION_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field messages in the order they were produced.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form or JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Messages returns the user-facing lines of the error.
//
// Field details win over the summary message; their order is preserved.
func (e *AppError) Messages() []string {
	if len(e.Details) == 0 {
		return []string{e.Message}
	}
	lines := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		lines = append(lines, detail.Message)
	}
	return lines
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " nicht gefunden.",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Rejected creates an [AppError] for a request the backend accepted for
// processing but refused to apply (HTTP 202 with a message body).
func Rejected(msg string) *AppError {
	return &AppError{
		Code:       CodeRejected,
		Message:    msg,
		HTTPStatus: http.StatusAccepted,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(msg string) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    msg,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Ein unerwarteter Fehler ist aufgetreten.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServerError creates a 502 [AppError] for a 5xx answer of the remote API.
func ServerError(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeServer,
		Message:    msg,
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NetworkError creates a 503 [AppError] for a remote API that could not be reached.
func NetworkError(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeNetwork,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err is an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
