package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrInvalidSession indicates a session without server URL or token
	ErrInvalidSession = errors.New("invalid session")

	// ErrStagedNotFound indicates that no record is staged under the key
	ErrStagedNotFound = errors.New("staged record not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
