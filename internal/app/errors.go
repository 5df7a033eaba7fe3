package app

import (
	"errors"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called while the application runs.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoLayout indicates neither the options nor the config name a layout.
	ErrNoLayout = errors.New("no layout configured")

	// ErrUnknownKey indicates a quit key name tcell does not know.
	ErrUnknownKey = errors.New("unknown key name")

	// ErrElementNotFound indicates an action addressed a missing element id.
	ErrElementNotFound = errors.New("element not found")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
