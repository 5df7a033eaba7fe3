package controller

import "errors"

// ErrDuplicateID indicates a controller id is already registered.
var ErrDuplicateID = errors.New("controller: duplicate controller id")

// DuplicateIDError reports the id that could not be registered.
type DuplicateIDError struct {
	ID string
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return "cannot register duplicate controller id: " + e.ID
}

// Is matches ErrDuplicateID.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}
