package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestAppErrorMessageFormatting(t *testing.T) {
	base := New("TEST", "something failed", http.StatusBadRequest)
	if got := base.Error(); got != "something failed" {
		t.Fatalf("Error() = %q, want %q", got, "something failed")
	}

	inner := stdErrors.New("db down")
	wrapped := base.WithInternal(inner)
	if got := wrapped.Error(); got != "something failed: db down" {
		t.Fatalf("Error() = %q", got)
	}
	if !stdErrors.Is(wrapped, inner) {
		t.Fatal("expected errors.Is to match the internal error")
	}
}

func TestWithInternalDoesNotMutateOriginal(t *testing.T) {
	wrapped := ErrNotFound.WithInternal(stdErrors.New("missing row"))
	if ErrNotFound.Internal != nil {
		t.Fatal("sentinel error must stay untouched")
	}
	if wrapped.Code != ErrNotFound.Code || wrapped.StatusCode != ErrNotFound.StatusCode {
		t.Fatal("wrapped copy should retain code and status")
	}
}

func TestWithMessageReplacesUserFacingText(t *testing.T) {
	custom := ErrNotFound.WithMessage("Award not found")
	if custom.Message != "Award not found" {
		t.Fatalf("Message = %q", custom.Message)
	}
	if ErrNotFound.Message == custom.Message {
		t.Fatal("sentinel message must stay untouched")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Fatal("nil error should map to nil")
	}

	appErr := FromError(ErrForbidden)
	if appErr != ErrForbidden {
		t.Fatal("AppError should round-trip unchanged")
	}

	generic := FromError(stdErrors.New("boom"))
	if generic.Code != ErrInternalServer.Code {
		t.Fatalf("generic error mapped to %q", generic.Code)
	}
	if generic.Internal == nil {
		t.Fatal("internal error should be preserved for logging")
	}
}

func TestValidationHelpers(t *testing.T) {
	err := NewValidation("status must be approved or rejected")
	if err.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("StatusCode = %d", err.StatusCode)
	}
	if err.Code != ErrValidation.Code {
		t.Fatalf("Code = %q", err.Code)
	}
}
