// Package repoerrors holds the sentinel errors shared by the store
// implementations and the domain services. It imports nothing from the rest
// of the module, so both sides can depend on it.
package repoerrors

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an insert collides with an existing ID
	ErrDuplicateID = errors.New("duplicate id")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
