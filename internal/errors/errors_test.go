package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" {
		t.Errorf("expected code INTERNAL_ERROR, got %s", err.Code)
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.StatusCode)
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match cause")
	}
	if err.Error() != ErrInternalServer.Message {
		t.Errorf("internal detail leaked into message: %s", err.Error())
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "amount must be positive")

	if err.Code != "INVALID_INPUT" || err.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected error %+v", err)
	}
	if err.Message != "amount must be positive" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel was modified")
	}
}

func TestAsAppError(t *testing.T) {
	var appErr *AppError
	wrapped := Wrap(ErrBudgetNotFound, nil)
	if !errors.As(error(wrapped), &appErr) {
		t.Fatal("expected errors.As to find AppError")
	}
	if appErr.Code != "BUDGET_NOT_FOUND" {
		t.Errorf("expected BUDGET_NOT_FOUND, got %s", appErr.Code)
	}
}
