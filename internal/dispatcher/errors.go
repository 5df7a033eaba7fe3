package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrMissingRoot indicates the dispatcher has no root node.
	ErrMissingRoot = errors.New("dispatcher: missing required root node")

	// ErrUnknownController indicates an action names an unregistered controller.
	ErrUnknownController = errors.New("dispatcher: unknown controller")

	// ErrActionPanic indicates an action panicked and panic recovery was on.
	ErrActionPanic = errors.New("dispatcher: action panicked")
)

// UnknownControllerError reports the controller id an action referenced.
type UnknownControllerError struct {
	ControllerID string
	Action       string
}

// Error implements the error interface.
func (e *UnknownControllerError) Error() string {
	return "no controller registered for " + e.ControllerID
}

// Is matches ErrUnknownController.
func (e *UnknownControllerError) Is(target error) bool {
	return target == ErrUnknownController
}

// PanicError wraps a recovered panic from an action.
type PanicError struct {
	ControllerID string
	Action       string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("action %s.%s panicked: %v", e.ControllerID, e.Action, e.Value)
}

// Is matches ErrActionPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrActionPanic
}
