package streamknn

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned by Predict while the window holds
	// fewer samples than the configured number of neighbors. It marks the
	// warm-up phase of a fresh stream, not a failure.
	ErrInsufficientData = errors.New("insufficient data")
)

// ErrInvalidOption reports a configuration value rejected at construction.
type ErrInvalidOption struct {
	Option string
	Value  any
	Reason string
}

func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("invalid option %s=%v: %s", e.Option, e.Value, e.Reason)
}
