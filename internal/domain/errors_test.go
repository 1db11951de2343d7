package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{
		"type": "must be at most 100 characters",
		"city": "must be at most 100 characters",
	}}

	want := "validation error: city: must be at most 100 characters; type: must be at most 100 characters"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Is(t *testing.T) {
	t.Parallel()

	var err error = &ValidationError{Fields: map[string]string{"city": "bad"}}
	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(ValidationError, ErrValidation) = false, want true")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	var verr *ValidationError
	if !errors.As(wrapped, &verr) {
		t.Fatal("errors.As(wrapped, *ValidationError) = false, want true")
	}
	if verr.Fields["city"] != "bad" {
		t.Errorf("Fields[city] = %q, want %q", verr.Fields["city"], "bad")
	}
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		if err := FetchError(nil); err != nil {
			t.Errorf("FetchError(nil) = %v, want nil", err)
		}
	})

	t.Run("keeps cause in chain", func(t *testing.T) {
		t.Parallel()
		cause := fmt.Errorf("upstream: %w", ErrUnavailable)
		err := FetchError(cause)

		if !errors.Is(err, ErrFetchFailed) {
			t.Error("errors.Is(err, ErrFetchFailed) = false, want true")
		}
		if !errors.Is(err, ErrUnavailable) {
			t.Error("errors.Is(err, ErrUnavailable) = false, want true")
		}
	})

	t.Run("does not double wrap", func(t *testing.T) {
		t.Parallel()
		first := FetchError(errors.New("boom"))
		if second := FetchError(first); second != first {
			t.Errorf("FetchError(FetchError(x)) = %v, want the same error back", second)
		}
	})
}
