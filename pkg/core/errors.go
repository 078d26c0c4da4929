package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrValidation   = errors.New("invalid note")
	ErrNotFound     = errors.New("note not found")
	ErrPersistence  = errors.New("persistence failure")
	ErrInvalidTheme = errors.New("invalid theme")
)

// ValidationError is returned by create/update when the resulting note would
// break a field invariant. It is meant to be shown to the user as a correctable
// input message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError is returned when no note has the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError wraps a failure of the durable storage.
// Op is "load" or "save", Key is the storage key involved.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrPersistence, e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }
