package action

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates the parameter attribute is not a JSON object.
	ErrInvalidParams = errors.New("action: invalid parameter attribute")

	// ErrUnpairedToken indicates an action list with an odd token count.
	// ParseActions drops the trailing token silently; only Validate reports it.
	ErrUnpairedToken = errors.New("action: unpaired token in action list")
)

// ParseError describes a parameter attribute that could not be parsed.
type ParseError struct {
	// Attribute is the raw attribute text.
	Attribute string

	// Message explains what is wrong.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", AttrParams, e.Message)
}

// Is matches ErrInvalidParams.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidParams
}
