package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	// ErrFetchFailed is the single error kind surfaced by a shop fetch. It
	// covers transport failures, non-2xx responses, and malformed payloads
	// alike; the wrapped cause is kept for logs only.
	ErrFetchFailed = errors.New("fetch failed")

	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FetchError marks err as a failed fetch while keeping the original cause in
// the chain, so both errors.Is(err, ErrFetchFailed) and errors.Is(err, cause)
// hold. A nil err returns nil; an error that already carries ErrFetchFailed is
// returned unchanged.
func FetchError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrFetchFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrFetchFailed, err)
}
