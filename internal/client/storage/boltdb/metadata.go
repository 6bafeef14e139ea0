package boltdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"
)

// Значение хранится десятичной строкой unix секунд
var keyLastCommit = []byte("last_commit")

var errMetadataBucketMissing = errors.New("metadata bucket not found")

// SaveLastCommitTimestamp saves the timestamp of the last successful commit
func (s *Storage) SaveLastCommitTimestamp(ctx context.Context, timestamp int64) error {
	if timestamp <= 0 {
		return fmt.Errorf("invalid commit timestamp %d", timestamp)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMetadata)
		if b == nil {
			return errMetadataBucketMissing
		}
		return b.Put(keyLastCommit, strconv.AppendInt(nil, timestamp, 10))
	})
}

// GetLastCommitTimestamp возвращает 0, если commit еще не выполнялся
func (s *Storage) GetLastCommitTimestamp(ctx context.Context) (int64, error) {
	var ts int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMetadata)
		if b == nil {
			return errMetadataBucketMissing
		}
		raw := b.Get(keyLastCommit)
		if raw == nil {
			return nil
		}
		v, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("corrupt last commit value %q: %w", raw, err)
		}
		ts = v
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get last commit timestamp: %w", err)
	}
	return ts, nil
}
