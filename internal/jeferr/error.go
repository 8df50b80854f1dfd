// Package jeferr provides the explorer's single custom error type, used
// for the handful of conditions a caller must decide about rather than
// silently skip (spec §7): config parse failure before falling back to
// the embedded default, and opener spawn failure.
package jeferr

import "fmt"

// JefError is a simple message-carrying error that optionally wraps a
// cause for %w chains.
type JefError struct {
	Message string
	Cause   error
}

// New creates a JefError with no wrapped cause.
func New(message string) *JefError {
	return &JefError{Message: message}
}

// Wrap creates a JefError that wraps cause.
func Wrap(message string, cause error) *JefError {
	return &JefError{Message: message, Cause: cause}
}

func (e *JefError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *JefError) Unwrap() error {
	return e.Cause
}
