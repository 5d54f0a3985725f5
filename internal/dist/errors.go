package dist

import (
	"errors"
	"fmt"
)

// Sampling errors.
var (
	// ErrInvalidParameter indicates a missing or out-of-domain
	// distribution parameter.
	ErrInvalidParameter = errors.New("dist: invalid distribution parameter")

	// ErrInvalidSampleCount indicates a non-positive sample count.
	ErrInvalidSampleCount = errors.New("dist: sample count must be positive")
)

// ParameterError names the offending parameter so the caller can
// diagnose without re-running.
type ParameterError struct {
	Kind   Kind
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Reason == "missing" {
		return fmt.Sprintf("%s: parameter %q missing", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: parameter %q = %v %s", e.Kind, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// SampleCountError carries the rejected count.
type SampleCountError struct {
	N int
}

func (e *SampleCountError) Error() string {
	return fmt.Sprintf("sample count must be positive, got %d", e.N)
}

func (e *SampleCountError) Unwrap() error { return ErrInvalidSampleCount }
