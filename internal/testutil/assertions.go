package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "gramkosh/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("want %s, got no error at all", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("want an *AppError(%s), got %T: %v", expectedCode, err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("want error code %s, got %s (%q)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAmount checks a decimal value against its expected string form,
// ignoring trailing zeros.
func AssertAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected amount %s, got %s", want, got.String())
	}
}
