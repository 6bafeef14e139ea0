package storage

import (
	"context"

	"github.com/iudanet/goawx/internal/models"
)

//go:generate moq -out stagingstorage_mock.go . StagingStorage

// StagingStorage defines interface for records staged between CLI runs.
// Records are kept in the order they were first staged.
type StagingStorage interface {
	// SaveStaged stores or replaces a staged record by state.Key
	// Replacing keeps the original position in the staging order
	SaveStaged(ctx context.Context, state *models.RecordState) error

	// GetStaged retrieves a staged record by key
	// Returns ErrStagedNotFound if the key is not staged
	GetStaged(ctx context.Context, key string) (*models.RecordState, error)

	// ListStaged returns all staged records in staging order
	ListStaged(ctx context.Context) ([]*models.RecordState, error)

	// DeleteStaged removes a staged record
	// Returns ErrStagedNotFound if the key is not staged
	DeleteStaged(ctx context.Context, key string) error

	// ClearStaged removes all staged records
	ClearStaged(ctx context.Context) error
}
