package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/internal/client/auth"
	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/client/sync"
	"github.com/iudanet/goawx/internal/client/writeback"
	"github.com/iudanet/goawx/internal/models"
)

// stagedEntries возвращает StagedFunc с ключами вида "projects/<id>"
func stagedEntries(recs ...*models.Record) func(ctx context.Context) ([]*sync.Entry, error) {
	return func(ctx context.Context) ([]*sync.Entry, error) {
		entries := make([]*sync.Entry, 0, len(recs))
		for _, rec := range recs {
			id, ok := rec.ID()
			if !ok {
				id = "~draft"
			}
			entries = append(entries, &sync.Entry{Key: rec.Schema().Name + "/" + id, Record: rec})
		}
		return entries, nil
	}
}

func TestCli_runStatus_LoggedIn(t *testing.T) {
	tc := newTestCli(t)
	tc.auth.SessionFunc = func(ctx context.Context) (*storage.AuthData, error) {
		return &storage.AuthData{URL: "https://awx.example.com", Username: "admin"}, nil
	}

	changed := project(7, "demo")
	require.NoError(t, changed.Set("scm_branch", "main"))
	draft := models.NewRecord(models.Projects, map[string]any{"name": "new"})
	tc.sync.StagedFunc = stagedEntries(changed, draft)
	tc.sync.LastCommitFunc = func(ctx context.Context) (time.Time, error) {
		return time.Unix(1700000000, 0), nil
	}

	require.NoError(t, tc.runStatus(context.Background()))

	out := tc.out.String()
	assert.Contains(t, out, "Status: Logged in")
	assert.Contains(t, out, "Username: admin")
	assert.Contains(t, out, "Token expires: never")
	assert.Contains(t, out, "projects/7")
	assert.Contains(t, out, "update")
	assert.Contains(t, out, "scm_branch")
	assert.Contains(t, out, "projects/~draft")
	assert.Contains(t, out, "create")
	assert.Contains(t, out, "2 record(s) waiting to be committed")
	assert.Contains(t, out, "Last commit: ")
}

func TestCli_runStatus_NotLoggedIn(t *testing.T) {
	tc := newTestCli(t)
	tc.authenticated = false
	tc.auth.SessionFunc = func(ctx context.Context) (*storage.AuthData, error) {
		return nil, auth.ErrNotLoggedIn
	}
	tc.sync.StagedFunc = stagedEntries()
	tc.sync.LastCommitFunc = func(ctx context.Context) (time.Time, error) {
		return time.Time{}, errors.New("bucket missing")
	}

	require.NoError(t, tc.runStatus(context.Background()))

	out := tc.out.String()
	assert.Contains(t, out, "Status: Not logged in")
	assert.Contains(t, out, "awxctl login")
	assert.Contains(t, out, "✓ Nothing staged")
	assert.Contains(t, out, "Warning: failed to get last commit time")
}

func TestCli_runCommit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tc := newTestCli(t)
		tc.sync.GetPendingCountFunc = func(ctx context.Context) (int, error) { return 3, nil }
		tc.sync.CommitFunc = func(ctx context.Context) (*writeback.Result, error) {
			return &writeback.Result{Created: 1, Updated: 1, Discarded: 1}, nil
		}

		require.NoError(t, tc.runCommit(context.Background()))

		out := tc.out.String()
		assert.Contains(t, out, "Applying 3 staged record(s)")
		assert.Contains(t, out, "✓ Commit completed successfully!")
		assert.Contains(t, out, "Created:   1")
		assert.Contains(t, out, "Discarded: 1")
		assert.NotContains(t, out, "Unchanged")
	})

	t.Run("nothing staged", func(t *testing.T) {
		tc := newTestCli(t)
		tc.sync.GetPendingCountFunc = func(ctx context.Context) (int, error) { return 0, nil }

		require.NoError(t, tc.runCommit(context.Background()))
		assert.Contains(t, tc.out.String(), "Nothing to commit.")
		assert.Empty(t, tc.sync.CommitCalls())
	})

	t.Run("partial failure", func(t *testing.T) {
		tc := newTestCli(t)
		remoteErr := errors.New("400 Bad Request")
		tc.sync.GetPendingCountFunc = func(ctx context.Context) (int, error) { return 3, nil }
		tc.sync.CommitFunc = func(ctx context.Context) (*writeback.Result, error) {
			return &writeback.Result{Created: 1}, &writeback.CommitError{
				Err:       remoteErr,
				Record:    project(2, "b"),
				Action:    writeback.ActionUpdate,
				Index:     1,
				Committed: 1,
			}
		}

		err := tc.runCommit(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, remoteErr)

		var commitErr *writeback.CommitError
		require.ErrorAs(t, err, &commitErr)
		assert.Contains(t, tc.out.String(), "1 record(s) were committed before the failure")
		assert.Contains(t, tc.out.String(), "Remaining records stay staged")
	})

	t.Run("not authenticated", func(t *testing.T) {
		tc := newTestCli(t)
		tc.authenticated = false

		require.ErrorIs(t, tc.runCommit(context.Background()), errNotAuthenticated)
		assert.Empty(t, tc.sync.GetPendingCountCalls())
	})
}
