package sync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/client/writeback"
	"github.com/iudanet/goawx/internal/models"
)

// memStaging - упорядоченное staging хранилище в памяти поверх moq мока
func memStaging() *storage.StagingStorageMock {
	var order []string
	states := make(map[string]*models.RecordState)

	return &storage.StagingStorageMock{
		SaveStagedFunc: func(ctx context.Context, state *models.RecordState) error {
			if _, ok := states[state.Key]; !ok {
				order = append(order, state.Key)
			}
			states[state.Key] = state
			return nil
		},
		GetStagedFunc: func(ctx context.Context, key string) (*models.RecordState, error) {
			st, ok := states[key]
			if !ok {
				return nil, storage.ErrStagedNotFound
			}
			return st, nil
		},
		ListStagedFunc: func(ctx context.Context) ([]*models.RecordState, error) {
			out := make([]*models.RecordState, 0, len(order))
			for _, key := range order {
				out = append(out, states[key])
			}
			return out, nil
		},
		DeleteStagedFunc: func(ctx context.Context, key string) error {
			if _, ok := states[key]; !ok {
				return storage.ErrStagedNotFound
			}
			delete(states, key)
			for i, k := range order {
				if k == key {
					order = append(order[:i], order[i+1:]...)
					break
				}
			}
			return nil
		},
		ClearStagedFunc: func(ctx context.Context) error {
			order = nil
			states = make(map[string]*models.RecordState)
			return nil
		},
	}
}

func memMetadata() *storage.MetadataStorageMock {
	var last int64
	return &storage.MetadataStorageMock{
		GetLastCommitTimestampFunc: func(ctx context.Context) (int64, error) {
			return last, nil
		},
		SaveLastCommitTimestampFunc: func(ctx context.Context, timestamp int64) error {
			last = timestamp
			return nil
		},
	}
}

func newTestService(client api.ClientAPI, staging storage.StagingStorage, metadata storage.MetadataStorage) *service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := NewService(client, staging, metadata, logger).(*service)
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc
}

func okClient() *api.ClientAPIMock {
	return &api.ClientAPIMock{
		DoFunc: func(ctx context.Context, method, path string, body any) (*api.Response, error) {
			if method == http.MethodPost {
				return &api.Response{StatusCode: http.StatusCreated, Body: []byte(`{"id": 100}`)}, nil
			}
			return &api.Response{StatusCode: http.StatusOK}, nil
		},
	}
}

func TestKey(t *testing.T) {
	rec := models.Hydrate(models.Projects, map[string]any{"id": 7.0})
	assert.Equal(t, "projects/7", Key(rec))

	draft := models.NewRecord(models.Hosts, nil)
	k1, k2 := Key(draft), Key(draft)
	assert.True(t, strings.HasPrefix(k1, "hosts/~"))
	assert.NotEqual(t, k1, k2)
}

func TestStage_RoundTrip(t *testing.T) {
	staging := memStaging()
	svc := newTestService(okClient(), staging, memMetadata())
	ctx := context.Background()

	rec := models.Hydrate(models.Projects, map[string]any{"id": 7.0, "name": "old"})
	require.NoError(t, rec.Set("name", "new"))

	key, err := svc.Stage(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "projects/7", key)

	saved := staging.SaveStagedCalls()
	require.Len(t, saved, 1)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), saved[0].State.StagedAt)

	got, err := svc.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, rec.Export(), got.Export())
	assert.Equal(t, []string{"name"}, got.Changed())
	assert.True(t, got.IsInternal())

	// Revert работает и после восстановления
	got.Revert("name")
	v, _ := got.Get("name")
	assert.Equal(t, "old", v)
}

func TestStage_InvalidRecord(t *testing.T) {
	staging := memStaging()
	svc := newTestService(okClient(), staging, memMetadata())

	_, err := svc.Stage(context.Background(), nil)
	assert.ErrorIs(t, err, writeback.ErrInvalidModel)

	_, err = svc.Stage(context.Background(), models.NewRecord(nil, nil))
	assert.ErrorIs(t, err, writeback.ErrInvalidModel)
	assert.Empty(t, staging.SaveStagedCalls())
}

func TestStage_StorageError(t *testing.T) {
	storageErr := errors.New("disk full")
	staging := &storage.StagingStorageMock{
		SaveStagedFunc: func(ctx context.Context, state *models.RecordState) error {
			return storageErr
		},
	}
	svc := newTestService(okClient(), staging, memMetadata())

	_, err := svc.Stage(context.Background(), models.NewRecord(models.Labels, nil))
	assert.ErrorIs(t, err, storageErr)
}

func TestRestage(t *testing.T) {
	svc := newTestService(okClient(), memStaging(), memMetadata())
	ctx := context.Background()

	draft := models.NewRecord(models.Labels, nil)
	key, err := svc.Stage(ctx, draft)
	require.NoError(t, err)
	_, err = svc.Stage(ctx, models.NewRecord(models.Teams, nil))
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, key)
	require.NoError(t, err)
	require.NoError(t, loaded.Set("name", "prod"))
	require.NoError(t, svc.Restage(ctx, key, loaded))

	entries, err := svc.Staged(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, key, entries[0].Key, "restaged record keeps its position")
	v, _ := entries[0].Record.Get("name")
	assert.Equal(t, "prod", v)

	err = svc.Restage(ctx, "labels/~missing", loaded)
	assert.ErrorIs(t, err, storage.ErrStagedNotFound)
}

func TestUnstage(t *testing.T) {
	svc := newTestService(okClient(), memStaging(), memMetadata())
	ctx := context.Background()

	key, err := svc.Stage(ctx, models.NewRecord(models.Labels, nil))
	require.NoError(t, err)

	require.NoError(t, svc.Unstage(ctx, key))
	count, err := svc.GetPendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, svc.Unstage(ctx, key), storage.ErrStagedNotFound)
}

func TestStaged_UnknownResource(t *testing.T) {
	staging := memStaging()
	require.NoError(t, staging.SaveStaged(context.Background(), &models.RecordState{Key: "widgets/1", Resource: "widgets"}))
	svc := newTestService(okClient(), staging, memMetadata())

	_, err := svc.Staged(context.Background())
	var unknown *models.UnknownResourceError
	assert.ErrorAs(t, err, &unknown)
}

func TestCommit_Success(t *testing.T) {
	client := okClient()
	staging := memStaging()
	metadata := memMetadata()
	svc := newTestService(client, staging, metadata)
	ctx := context.Background()

	draft := models.NewRecord(models.Labels, nil)
	require.NoError(t, draft.Set("name", "l1"))
	_, err := svc.Stage(ctx, draft)
	require.NoError(t, err)

	changed := models.Hydrate(models.Projects, map[string]any{"id": 7.0, "name": "old"})
	require.NoError(t, changed.Set("name", "new"))
	_, err = svc.Stage(ctx, changed)
	require.NoError(t, err)

	deleted := models.Hydrate(models.Hosts, map[string]any{"id": 9.0})
	deleted.MarkDeleted()
	_, err = svc.Stage(ctx, deleted)
	require.NoError(t, err)

	res, err := svc.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Deleted)

	calls := client.DoCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/api/v2/labels", calls[0].Path)
	assert.Equal(t, http.MethodPut, calls[1].Method)
	assert.Equal(t, "/api/v2/projects/7", calls[1].Path)
	assert.Equal(t, http.MethodDelete, calls[2].Method)
	assert.Equal(t, "/api/v2/hosts/9", calls[2].Path)

	count, err := svc.GetPendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	last, err := svc.LastCommit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), last.Unix())
}

func TestCommit_PartialFailureKeepsRemainder(t *testing.T) {
	client := &api.ClientAPIMock{
		DoFunc: func(ctx context.Context, method, path string, body any) (*api.Response, error) {
			if method == http.MethodPut {
				return &api.Response{StatusCode: http.StatusBadRequest, Body: []byte(`{"detail":"bad"}`)}, nil
			}
			return &api.Response{StatusCode: http.StatusCreated, Body: []byte(`{"id": 1}`)}, nil
		},
	}
	staging := memStaging()
	metadata := memMetadata()
	svc := newTestService(client, staging, metadata)
	ctx := context.Background()

	first, err := svc.Stage(ctx, models.NewRecord(models.Labels, nil))
	require.NoError(t, err)

	changed := models.Hydrate(models.Projects, map[string]any{"id": 7.0, "name": "old"})
	require.NoError(t, changed.Set("name", "new"))
	second, err := svc.Stage(ctx, changed)
	require.NoError(t, err)

	third, err := svc.Stage(ctx, models.NewRecord(models.Teams, nil))
	require.NoError(t, err)

	res, err := svc.Commit(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, res.Created)

	var remote *api.RemoteError
	assert.ErrorAs(t, err, &remote)
	var commitErr *writeback.CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.True(t, commitErr.Partial())

	entries, err := svc.Staged(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].Key)
	assert.Equal(t, third, entries[1].Key)
	assert.True(t, entries[0].Record.IsChanged())

	_, err = svc.Get(ctx, first)
	assert.ErrorIs(t, err, storage.ErrStagedNotFound)

	assert.Empty(t, metadata.SaveLastCommitTimestampCalls())
	assert.Empty(t, staging.ClearStagedCalls())
}

func TestCommit_Empty(t *testing.T) {
	client := &api.ClientAPIMock{}
	svc := newTestService(client, memStaging(), memMetadata())

	res, err := svc.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total())
	assert.Empty(t, client.DoCalls())
}

func TestCommit_ListError(t *testing.T) {
	listErr := errors.New("bolt closed")
	staging := &storage.StagingStorageMock{
		ListStagedFunc: func(ctx context.Context) ([]*models.RecordState, error) {
			return nil, listErr
		},
	}
	svc := newTestService(okClient(), staging, memMetadata())

	_, err := svc.Commit(context.Background())
	assert.ErrorIs(t, err, listErr)
}

func TestCommit_TimestampErrorIgnored(t *testing.T) {
	metadata := &storage.MetadataStorageMock{
		SaveLastCommitTimestampFunc: func(ctx context.Context, timestamp int64) error {
			return errors.New("metadata bucket missing")
		},
	}
	svc := newTestService(okClient(), memStaging(), metadata)

	_, err := svc.Stage(context.Background(), models.NewRecord(models.Labels, nil))
	require.NoError(t, err)

	_, err = svc.Commit(context.Background())
	require.NoError(t, err)
	assert.Len(t, metadata.SaveLastCommitTimestampCalls(), 1)
}

func TestLastCommit_Never(t *testing.T) {
	svc := newTestService(okClient(), memStaging(), memMetadata())

	last, err := svc.LastCommit(context.Background())
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}
