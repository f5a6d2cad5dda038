package testutil

import (
	"errors"
	"strings"
	"testing"

	apperrors "followuply/internal/errors"
)

// AssertAppError fails unless err is an *AppError carrying code.
func AssertAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError %s, got %T: %v", code, err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertFieldError fails unless err is a validation error with a field
// message mentioning field.
func AssertFieldError(t *testing.T, err error, field string) {
	t.Helper()

	appErr := AssertAppError(t, err, apperrors.ErrValidation.Code)
	for _, msg := range appErr.Errors {
		if strings.Contains(msg, field) {
			return
		}
	}
	t.Errorf("expected a field error mentioning %q, got %v", field, appErr.Errors)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
