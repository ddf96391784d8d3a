package rng

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every ArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a parameter outside the range a generator accepts.
type ArgumentError struct {
	// Name is the offending parameter (e.g. "n", "modulus").
	Name string

	// Value is the rejected value, formatted for display.
	Value string

	// Reason describes the accepted range.
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%s: %s", e.Name, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// IsInvalidArgument returns true if err is or wraps an ArgumentError.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func newArgumentError(name string, value any, reason string) *ArgumentError {
	return &ArgumentError{
		Name:   name,
		Value:  fmt.Sprint(value),
		Reason: reason,
	}
}
