package boltdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/goawx/internal/client/storage"
)

// openTestStorage открывает хранилище во временном каталоге теста
func openTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "awxctl.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dbPath
}

func dropBucket(t *testing.T, store *Storage, name []byte) {
	t.Helper()
	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(name)
	}))
}

func TestNew_CreatesPrivateFileWithBuckets(t *testing.T) {
	store, dbPath := openTestStorage(t)

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	// в файле лежит токен сессии
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketAuth, bucketStaged, bucketIndex, bucketMetadata} {
			if tx.Bucket(b) == nil {
				return errors.New(string(b) + " missing")
			}
		}
		return nil
	}))
}

func TestNew_InvalidPath(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "awxctl.db"))
	assert.Error(t, err)
	assert.Nil(t, store)
}

// Второй процесс awxctl не должен ждать бесконечно
func TestNew_LockedDatabaseTimesOut(t *testing.T) {
	_, dbPath := openTestStorage(t)

	start := time.Now()
	second, err := New(context.Background(), dbPath)
	require.Error(t, err)
	assert.Nil(t, second)
	assert.Contains(t, err.Error(), "failed to open boltdb")
	assert.Less(t, time.Since(start), openTimeout+5*time.Second)
}

func TestClose_Idempotent(t *testing.T) {
	store, _ := openTestStorage(t)

	require.NoError(t, store.Close())
	assert.Nil(t, store.db)
	assert.NoError(t, store.Close())
}

// Сессия и время последнего commit переживают перезапуск
func TestReopen_KeepsState(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "awxctl.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveAuth(ctx, &storage.AuthData{URL: "https://awx.local", Token: "pat", TokenID: 4}))
	require.NoError(t, store.SaveLastCommitTimestamp(ctx, 1700000000))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	session, err := reopened.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), session.TokenID)

	ts, err := reopened.GetLastCommitTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), ts)
}

func TestInitBuckets_RestoresMissing(t *testing.T) {
	store, _ := openTestStorage(t)
	for _, b := range [][]byte{bucketAuth, bucketStaged, bucketIndex, bucketMetadata} {
		dropBucket(t, store, b)
	}

	require.NoError(t, store.initBuckets())

	_, err := store.GetAuth(context.Background())
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}
