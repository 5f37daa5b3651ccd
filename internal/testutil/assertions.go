package testutil

import (
	"errors"
	"testing"

	apperrors "spendtrack/internal/errors"
)

// AssertKind checks that err is an *AppError with the expected kind.
func AssertKind(t *testing.T, err error, expected apperrors.Kind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError of kind %q, got nil", expected)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Kind != expected {
		t.Errorf("expected error kind %q, got %q (message: %s)", expected, appErr.Kind, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
