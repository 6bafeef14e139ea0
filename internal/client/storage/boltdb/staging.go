package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/models"
)

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func stagingBuckets(tx *bbolt.Tx) (*bbolt.Bucket, *bbolt.Bucket, error) {
	staged := tx.Bucket(bucketStaged)
	index := tx.Bucket(bucketIndex)
	if staged == nil || index == nil {
		return nil, nil, fmt.Errorf("staging bucket not found")
	}
	return staged, index, nil
}

// SaveStaged stores or replaces a staged record
func (s *Storage) SaveStaged(ctx context.Context, state *models.RecordState) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if state == nil || state.Key == "" {
		return fmt.Errorf("staged record key is required")
	}

	// Сериализуем state в JSON
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal staged record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		staged, index, err := stagingBuckets(tx)
		if err != nil {
			return err
		}

		// Повторное сохранение оставляет запись на прежнем месте
		pos := index.Get([]byte(state.Key))
		if pos == nil {
			seq, err := staged.NextSequence()
			if err != nil {
				return fmt.Errorf("failed to allocate sequence: %w", err)
			}
			pos = seqKey(seq)
			if err := index.Put([]byte(state.Key), pos); err != nil {
				return fmt.Errorf("failed to save index: %w", err)
			}
		}

		if err := staged.Put(pos, data); err != nil {
			return fmt.Errorf("failed to save staged record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetStaged retrieves a staged record by key
func (s *Storage) GetStaged(ctx context.Context, key string) (*models.RecordState, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var state *models.RecordState

	err := s.db.View(func(tx *bbolt.Tx) error {
		staged, index, err := stagingBuckets(tx)
		if err != nil {
			return err
		}

		pos := index.Get([]byte(key))
		if pos == nil {
			return storage.ErrStagedNotFound
		}
		data := staged.Get(pos)
		if data == nil {
			return storage.ErrStagedNotFound
		}

		// Десериализуем
		state = &models.RecordState{}
		if err := json.Unmarshal(data, state); err != nil {
			return fmt.Errorf("failed to unmarshal staged record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}

// ListStaged returns all staged records in staging order
func (s *Storage) ListStaged(ctx context.Context) ([]*models.RecordState, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var states []*models.RecordState

	err := s.db.View(func(tx *bbolt.Tx) error {
		staged, _, err := stagingBuckets(tx)
		if err != nil {
			return err
		}

		// ключи big endian, поэтому обход курсором идет в порядке добавления
		return staged.ForEach(func(k, v []byte) error {
			state := &models.RecordState{}
			if err := json.Unmarshal(v, state); err != nil {
				return fmt.Errorf("failed to unmarshal staged record: %w", err)
			}
			states = append(states, state)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return states, nil
}

// DeleteStaged removes a staged record
func (s *Storage) DeleteStaged(ctx context.Context, key string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		staged, index, err := stagingBuckets(tx)
		if err != nil {
			return err
		}

		pos := index.Get([]byte(key))
		if pos == nil {
			return storage.ErrStagedNotFound
		}
		// pos указывает в память транзакции, копируем до удаления из index
		pos = append([]byte(nil), pos...)

		if err := index.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete index: %w", err)
		}
		if err := staged.Delete(pos); err != nil {
			return fmt.Errorf("failed to delete staged record: %w", err)
		}
		return nil
	})
}

// ClearStaged removes all staged records
func (s *Storage) ClearStaged(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketStaged, bucketIndex} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return fmt.Errorf("failed to delete %s bucket: %w", name, err)
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
