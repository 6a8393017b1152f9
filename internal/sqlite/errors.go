package sqlite

import "strings"

// modernc.org/sqlite surfaces constraint failures as plain error strings, so
// the repositories classify them by message before translating to the
// repoerrors sentinels. Allocation inserts hit the engineer/project foreign
// keys; seed loading hits the primary keys.

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
