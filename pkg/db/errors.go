package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. Postgres names the constraint in its message; sqlite
// (the dev/test driver) names the columns instead, so a missing constraint
// name falls through to the generic message markers.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
