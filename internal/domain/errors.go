package domain

import "errors"

var (
	// ErrConflict indicates a storage-layer uniqueness violation.
	ErrConflict = errors.New("already exists")
	// ErrNotFound indicates that no row matched the operation's predicate.
	ErrNotFound = errors.New("not found")
)
