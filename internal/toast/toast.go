// Package toast builds the short user-facing notifications that accompany
// every API response.
package toast

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
)

// Kind selects how the UI styles a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Display durations in milliseconds.
const (
	DefaultDuration = 3000
	WarningDuration = 5000
	ErrorDuration   = 6000
)

// Toast is a transient notification.
type Toast struct {
	Kind       Kind       `json:"kind"`
	Title      string     `json:"title"`
	Message    string     `json:"message,omitempty"`
	DurationMs int        `json:"duration_ms"`
	UndoUntil  *time.Time `json:"undo_until,omitempty"`
}

// Success builds a success toast.
func Success(title, message string) Toast {
	return Toast{Kind: KindSuccess, Title: title, Message: message, DurationMs: DefaultDuration}
}

// Info builds an informational toast.
func Info(title, message string) Toast {
	return Toast{Kind: KindInfo, Title: title, Message: message, DurationMs: DefaultDuration}
}

// Warning builds a warning toast, shown for longer than a success toast.
func Warning(title, message string) Toast {
	return Toast{Kind: KindWarning, Title: title, Message: message, DurationMs: WarningDuration}
}

// Undo builds the toast shown after a delete. It stays up for as long as the
// delete can be undone.
func Undo(title string, until, now time.Time) Toast {
	ms := int(until.Sub(now) / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	until = until.UTC()
	return Toast{
		Kind:       KindSuccess,
		Title:      title,
		Message:    "Undo is available for a few seconds",
		DurationMs: ms,
		UndoUntil:  &until,
	}
}

// Saved picks the success toast for a save, or a warning toast listing the
// non-blocking warnings when there are any.
func Saved(title string, warnings []string) Toast {
	if len(warnings) > 0 {
		return Warning(title, strings.Join(warnings, ". "))
	}
	return Success(title, "")
}

// titles maps each kind to the headline the user sees.
var titles = map[apperrors.Kind]string{
	apperrors.KindValidation:    "Please check the form",
	apperrors.KindInvalidInput:  "Invalid request",
	apperrors.KindUnauthorized:  "Please sign in again",
	apperrors.KindAuthorization: "Access denied",
	apperrors.KindNotFound:      "No data found",
	apperrors.KindConflict:      "This record already exists",
	apperrors.KindReferential:   "Cannot delete, this record is still referenced",
	apperrors.KindTransient:     "Network problem. Please try again.",
	apperrors.KindRateLimited:   "Slow down",
	apperrors.KindGone:          "Too late to undo",
	apperrors.KindInternal:      "Something went wrong",
}

// FromError turns any error into an error toast. Internal causes never reach
// the message.
func FromError(err error) Toast {
	appErr := asAppError(err)

	msg := appErr.Message
	switch appErr.Kind {
	case apperrors.KindValidation:
		if len(appErr.Errors) > 0 {
			msg = strings.Join(appErr.Errors, ". ")
		}
	case apperrors.KindAuthorization, apperrors.KindNotFound, apperrors.KindConflict,
		apperrors.KindReferential, apperrors.KindTransient:
		if generic := titles[appErr.Kind]; msg == generic {
			msg = ""
		}
	}

	title, ok := titles[appErr.Kind]
	if !ok {
		title = titles[apperrors.KindInternal]
	}

	return Toast{Kind: KindError, Title: title, Message: msg, DurationMs: ErrorDuration}
}

// ErrorResponse returns the status code and JSON body for err.
func ErrorResponse(err error) (int, gin.H) {
	appErr := asAppError(err)

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Errors) > 0 {
		body["errors"] = appErr.Errors
	}

	return appErr.StatusCode, gin.H{
		"error": body,
		"toast": FromError(appErr),
	}
}

func asAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
