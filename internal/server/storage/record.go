package storage

import (
	"context"

	"github.com/iudanet/goawx/internal/models"
)

//go:generate moq -out record_mock.go . RecordStorage

// RecordStorage defines interface for resource records persistence.
// Records of every resource share one table keyed by (resource, id).
type RecordStorage interface {
	// CreateRecord stores a new record and sets rec.ID, rec.Created and rec.Modified
	CreateRecord(ctx context.Context, rec *models.StoredRecord) error

	// GetRecord retrieves one record
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, resource string, id int64) (*models.StoredRecord, error)

	// ListRecords retrieves all records of a resource ordered by id
	// Returns empty slice if no records found
	ListRecords(ctx context.Context, resource string) ([]*models.StoredRecord, error)

	// UpdateRecord replaces fields of an existing record and bumps rec.Modified
	// Returns ErrRecordNotFound if record doesn't exist
	UpdateRecord(ctx context.Context, rec *models.StoredRecord) error

	// DeleteRecord deletes one record
	// Returns ErrRecordNotFound if record doesn't exist
	DeleteRecord(ctx context.Context, resource string, id int64) error
}
