// Package errors provides the tagged error taxonomy of the FollowUply API.
// Service-layer code returns *AppError values built from the sentinels
// below; storage failures are classified once by Classify so call sites
// never inspect driver messages.
package errors

import (
	"fmt"
	"net/http"
)

// Kind tags an AppError with its place in the taxonomy.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindInvalidInput  Kind = "invalid_input"
	KindUnauthorized  Kind = "unauthorized"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindReferential   Kind = "referential"
	KindTransient     Kind = "transient"
	KindRateLimited   Kind = "rate_limited"
	KindGone          Kind = "gone"
	KindInternal      Kind = "internal"
)

// AppError represents a structured application error with a kind, an error
// code, a human-readable message, an HTTP status code, optional field-level
// messages and an optional internal cause.
type AppError struct {
	Kind       Kind     `json:"-"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
	StatusCode int      `json:"-"`
	Internal   error    `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code, so errors.Is(err, ErrClientNotFound) holds
// for copies made by Wrap and WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Validation builds a validation error carrying the per-field messages.
// Validation errors are resolved locally and never reach the store.
func Validation(fieldErrors []string) *AppError {
	return &AppError{
		Kind:       ErrValidation.Kind,
		Code:       ErrValidation.Code,
		Message:    ErrValidation.Message,
		Errors:     append([]string(nil), fieldErrors...),
		StatusCode: ErrValidation.StatusCode,
	}
}

// RateLimited builds a rate-limit error whose message carries the countdown.
func RateLimited(retryAfterSeconds int) *AppError {
	return WithMessage(ErrRateLimited, fmt.Sprintf("Too many attempts. Please wait %d seconds and try again.", retryAfterSeconds))
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Kind: KindAuthorization, Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrValidation     = &AppError{Kind: KindValidation, Code: "VALIDATION_FAILED", Message: "Please correct the highlighted fields", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidInput   = &AppError{Kind: KindInvalidInput, Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Kind: KindNotFound, Code: "NOT_FOUND", Message: "No data found", StatusCode: http.StatusNotFound}
	ErrConflict       = &AppError{Kind: KindConflict, Code: "CONFLICT", Message: "This record already exists", StatusCode: http.StatusConflict}
	ErrReferenced     = &AppError{Kind: KindReferential, Code: "STILL_REFERENCED", Message: "Cannot delete, this record is still referenced", StatusCode: http.StatusConflict}
	ErrTransient      = &AppError{Kind: KindTransient, Code: "SERVICE_UNAVAILABLE", Message: "Network problem. Please check your connection and try again.", StatusCode: http.StatusServiceUnavailable}
	ErrRateLimited    = &AppError{Kind: KindRateLimited, Code: "RATE_LIMITED", Message: "Too many attempts. Please wait and try again.", StatusCode: http.StatusTooManyRequests}
	ErrUndoExpired    = &AppError{Kind: KindGone, Code: "UNDO_WINDOW_CLOSED", Message: "The undo window has closed", StatusCode: http.StatusGone}
	ErrInternalServer = &AppError{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "Something went wrong. Please try again.", StatusCode: http.StatusInternalServerError}
)

// Client errors.
var (
	ErrClientNotFound   = &AppError{Kind: KindNotFound, Code: "CLIENT_NOT_FOUND", Message: "Client not found", StatusCode: http.StatusNotFound}
	ErrClientHasInvoice = &AppError{Kind: KindReferential, Code: "CLIENT_HAS_INVOICES", Message: "Cannot delete, this client still has invoices", StatusCode: http.StatusConflict}
)

// Invoice errors.
var (
	ErrInvoiceNotFound    = &AppError{Kind: KindNotFound, Code: "INVOICE_NOT_FOUND", Message: "Invoice not found", StatusCode: http.StatusNotFound}
	ErrInvoiceAlreadyPaid = &AppError{Kind: KindConflict, Code: "INVOICE_ALREADY_PAID", Message: "This invoice is already paid", StatusCode: http.StatusConflict}
)

// Reminder, expense, profile and notification errors.
var (
	ErrReminderNotFound     = &AppError{Kind: KindNotFound, Code: "REMINDER_NOT_FOUND", Message: "Reminder not found", StatusCode: http.StatusNotFound}
	ErrExpenseNotFound      = &AppError{Kind: KindNotFound, Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrProfileNotFound      = &AppError{Kind: KindNotFound, Code: "PROFILE_NOT_FOUND", Message: "Profile not found", StatusCode: http.StatusNotFound}
	ErrNotificationNotFound = &AppError{Kind: KindNotFound, Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)
