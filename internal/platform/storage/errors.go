package storage

import "errors"

// Repository adapters return these when a write cannot proceed. Callers map
// them into their own error kinds.
var (
	ErrNotFound = errors.New("row not found")
	// ErrConflict covers unique violations, lock timeouts, serialization
	// failures and deadlocks. The caller may retry.
	ErrConflict = errors.New("write conflict")
)
