package model

import (
	"errors"
	"fmt"
	"strings"

	"phishing-detector/features"
)

// ErrClassifierUnavailable means no model is loaded or reachable; no
// prediction was attempted.
var ErrClassifierUnavailable = errors.New("model not loaded")

// SchemaMismatchError is returned for manual input that does not form a
// complete 30-value vector of -1, 0 or 1.
type SchemaMismatchError struct {
	Missing []string
	Invalid []string
	Got     int // number of positional values supplied
}

func (e *SchemaMismatchError) Error() string {
	var parts []string
	if e.Got != features.Count && len(e.Missing) == 0 && len(e.Invalid) == 0 {
		parts = append(parts, fmt.Sprintf("expected %d values, got %d", features.Count, e.Got))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid (must be -1, 0 or 1): "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return "invalid input data"
	}
	return "invalid input data: " + strings.Join(parts, "; ")
}

// InvocationError wraps any other failure raised by the classifier.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("prediction error: %v", e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
