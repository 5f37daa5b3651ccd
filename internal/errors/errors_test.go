package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesKindAndChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrBackendUnreachable, cause)

	if err.Kind != KindNetworkUnavailable {
		t.Errorf("expected kind %q, got %q", KindNetworkUnavailable, err.Kind)
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to remain in the chain")
	}
}

func TestWithMessageAndStatus(t *testing.T) {
	err := WithStatus(ErrValidation, "Amount is required", 422)
	if err.Message != "Amount is required" || err.StatusCode != 422 {
		t.Errorf("unexpected error: %+v", err)
	}
	if err.Kind != KindValidationRejected {
		t.Errorf("expected validation kind, got %q", err.Kind)
	}

	custom := WithMessage(ErrInvalidTotal, "total must be positive")
	if custom.Error() != "total must be positive" {
		t.Errorf("unexpected message: %q", custom.Error())
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	inner := Wrap(ErrServerFault, errors.New("boom"))
	outer := fmt.Errorf("fetching report: %w", inner)

	if got := KindOf(outer); got != KindServerFault {
		t.Errorf("expected %q through fmt wrapping, got %q", KindServerFault, got)
	}
	if !IsKind(outer, KindServerFault) {
		t.Error("expected IsKind to match through fmt wrapping")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("expected empty kind for non-AppError")
	}
}
