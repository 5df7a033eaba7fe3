package script

import (
	"errors"
	"fmt"
)

// Errors for script operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidController is returned when a controller table is malformed.
	ErrInvalidController = errors.New("invalid controller definition")
)

// ActionError is a Lua error raised by a controller function.
type ActionError struct {
	ControllerID string
	Function     string
	Err          error
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return fmt.Sprintf("lua %s.%s: %v", e.ControllerID, e.Function, e.Err)
}

// Unwrap returns the underlying Lua error.
func (e *ActionError) Unwrap() error {
	return e.Err
}
