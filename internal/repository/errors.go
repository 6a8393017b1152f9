package repository

import "github.com/planlane/staffing-mcp/internal/repository/repoerrors"

// The sentinels live in repoerrors so the domain services can match on them
// without importing this package, which itself imports the domain types.
var (
	ErrNotFound            = repoerrors.ErrNotFound
	ErrDuplicateID         = repoerrors.ErrDuplicateID
	ErrForeignKeyViolation = repoerrors.ErrForeignKeyViolation
)
