package engineer

import "errors"

var (
	// ErrEngineerNotFound indicates the engineer doesn't exist.
	ErrEngineerNotFound = errors.New("engineer not found")
)
