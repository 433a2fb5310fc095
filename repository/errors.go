package repository

import "errors"

// Sentinel errors surfaced to handlers via errors.Is.
var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUser signals a username uniqueness violation on registration.
	ErrDuplicateUser = errors.New("username already exists")
)
