package utils

import "strings"

// IsDuplicateKey reports whether err is a unique-constraint violation.
// gorm passes driver errors through verbatim, so this matches the
// message forms of the postgres and sqlite drivers.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
