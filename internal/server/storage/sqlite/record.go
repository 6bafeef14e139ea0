package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/goawx/internal/models"
	"github.com/iudanet/goawx/internal/server/storage"
)

// CreateRecord stores a new record. ID выдается последовательно внутри ресурса.
func (s *Storage) CreateRecord(ctx context.Context, rec *models.StoredRecord) error {
	body, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM records WHERE resource = ?`, rec.Resource,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to allocate record id: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (resource, id, body, created, modified) VALUES (?, ?, ?, ?, ?)`,
		rec.Resource, id, string(body), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	rec.ID = id
	rec.Created = now
	rec.Modified = now
	return nil
}

// GetRecord retrieves one record
func (s *Storage) GetRecord(ctx context.Context, resource string, id int64) (*models.StoredRecord, error) {
	query := `
		SELECT resource, id, body, created, modified
		FROM records
		WHERE resource = ? AND id = ?
	`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, resource, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// ListRecords retrieves all records of a resource ordered by id
func (s *Storage) ListRecords(ctx context.Context, resource string) ([]*models.StoredRecord, error) {
	query := `
		SELECT resource, id, body, created, modified
		FROM records
		WHERE resource = ?
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*models.StoredRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// UpdateRecord replaces fields of an existing record
func (s *Storage) UpdateRecord(ctx context.Context, rec *models.StoredRecord) error {
	body, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE records SET body = ?, modified = ? WHERE resource = ? AND id = ?`,
		string(body), now, rec.Resource, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	rec.Modified = now
	return nil
}

// DeleteRecord deletes one record
func (s *Storage) DeleteRecord(ctx context.Context, resource string, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE resource = ? AND id = ?`, resource, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.StoredRecord, error) {
	rec := &models.StoredRecord{}
	var body string

	if err := row.Scan(&rec.Resource, &rec.ID, &body, &rec.Created, &rec.Modified); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(body), &rec.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record body: %w", err)
	}
	if rec.Fields == nil {
		rec.Fields = map[string]any{}
	}
	return rec, nil
}
