package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a write targets an identifier that is not stored.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidConfig is returned at construction when a repository cannot be configured,
	// e.g. the entity type resolves to an empty collection name.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidConnection is returned when a connection string cannot be interpreted.
	ErrInvalidConnection = errors.New("invalid connection string")
)

// ConnectionError describes a failure while turning a connection string into a database handle.
type ConnectionError struct {
	Operation string
	Provider  string
	Err       error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s with %s provider: %v", e.Operation, e.Provider, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NotFoundError carries the collection and id of a missing record.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record not found in collection %s with ID %s", e.Collection, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
