package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that access token was not found or was revoked
	ErrTokenNotFound = errors.New("access token not found")

	// ErrRecordNotFound indicates that resource record was not found
	ErrRecordNotFound = errors.New("record not found")
)
