package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastCommitTimestamp saves the timestamp of the last successful commit
	SaveLastCommitTimestamp(ctx context.Context, timestamp int64) error

	// GetLastCommitTimestamp retrieves the timestamp of the last successful commit
	// Returns 0 if nothing has been committed yet
	GetLastCommitTimestamp(ctx context.Context) (int64, error)
}
