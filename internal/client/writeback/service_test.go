package writeback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/models"
)

type call struct {
	body   map[string]any
	method string
	path   string
}

// fakeAWX записывает запросы и отвечает по таблице method+path
type fakeAWX struct {
	responses map[string]func(w http.ResponseWriter)
	calls     []call
	mu        sync.Mutex
}

func newFakeAWX(t *testing.T) (*fakeAWX, *api.Client) {
	t.Helper()
	f := &fakeAWX{responses: make(map[string]func(w http.ResponseWriter))}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL + "/api/v2")
	require.NoError(t, err)
	return f, client
}

func (f *fakeAWX) on(method, path string, status int, body string) {
	f.responses[method+" "+path] = func(w http.ResponseWriter) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeAWX) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call{method: r.Method, path: r.URL.Path, body: body})
	f.mu.Unlock()

	if h, ok := f.responses[r.Method+" "+r.URL.Path]; ok {
		h(w)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"detail":"Not found."}`))
}

func commit(t *testing.T, client api.ClientAPI, recs ...*models.Record) (*Queue, *Result, error) {
	t.Helper()
	q := NewQueue()
	require.NoError(t, q.EnqueueAll(recs))
	res, err := NewService(client, nil).Commit(context.Background(), q)
	return q, res, err
}

// Черновик без полей: create, id от сервера, запись чистая
func TestCommit_Scenario_CreateDraft(t *testing.T) {
	fake, client := newFakeAWX(t)
	fake.on(http.MethodPost, "/api/v2/projects/", http.StatusCreated, `{"id": 42, "name": "x"}`)

	rec := models.NewRecord(models.Projects, nil)
	q, res, err := commit(t, client, rec)
	require.NoError(t, err)

	id, ok := rec.ID()
	require.True(t, ok)
	assert.Equal(t, "42", id)
	v, _ := rec.Get("id")
	assert.Equal(t, 42.0, v)
	assert.False(t, rec.IsChanged())
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, q.Len())

	require.Len(t, fake.calls, 1)
	assert.Equal(t, http.MethodPost, fake.calls[0].method)
	assert.Empty(t, fake.calls[0].body)
}

// Загруженная запись с изменением: update, flush
func TestCommit_Scenario_UpdateHydrated(t *testing.T) {
	fake, client := newFakeAWX(t)
	fake.on(http.MethodPut, "/api/v2/projects/7/", http.StatusOK, `{"id": 7, "name": "new"}`)

	rec := models.Hydrate(models.Projects, map[string]any{"id": 7.0, "name": "old"})
	require.True(t, rec.IsInternal())
	require.NoError(t, rec.Set("name", "new"))

	_, res, err := commit(t, client, rec)
	require.NoError(t, err)

	assert.False(t, rec.IsChanged())
	v, _ := rec.Get("name")
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, res.Updated)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, http.MethodPut, fake.calls[0].method)
	assert.Equal(t, "new", fake.calls[0].body["name"])
}

// Удаление: ровно один DELETE по пути, оканчивающемуся на /9/
func TestCommit_Scenario_Delete(t *testing.T) {
	fake, client := newFakeAWX(t)
	fake.on(http.MethodDelete, "/api/v2/hosts/9/", http.StatusNoContent, "")

	rec := models.Hydrate(models.Hosts, map[string]any{"id": 9.0, "name": "h"})
	rec.MarkDeleted()

	_, res, err := commit(t, client, rec)
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, http.MethodDelete, fake.calls[0].method)
	assert.True(t, strings.HasSuffix(fake.calls[0].path, "/9/"))
	assert.True(t, rec.IsDeleted())
	assert.Equal(t, 1, res.Deleted)
}

// Отказ сервера на update: RemoteError, очередь не очищена
func TestCommit_Scenario_RemoteRejected(t *testing.T) {
	fake, client := newFakeAWX(t)
	fake.on(http.MethodPut, "/api/v2/projects/7/", http.StatusBadRequest, `{"detail":"Invalid scm_url."}`)

	rec := models.Hydrate(models.Projects, map[string]any{"id": 7.0, "name": "old"})
	require.NoError(t, rec.Set("scm_url", "bogus"))

	q, _, err := commit(t, client, rec)
	require.Error(t, err)

	var remote *api.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Equal(t, "Invalid scm_url.", remote.Detail)

	var commitErr *CommitError
	require.True(t, errors.As(err, &commitErr))
	assert.Equal(t, 0, commitErr.Committed)
	assert.False(t, commitErr.Partial())
	assert.Equal(t, ActionUpdate, commitErr.Action)

	assert.Equal(t, 1, q.Len())
	assert.True(t, rec.IsChanged(), "pending changes survive a rejected update")
	assert.Len(t, fake.calls, 1)
}

// Отказы на create и delete тоже всплывают как RemoteError
func TestCommit_RemoteRejected_CreateAndDelete(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		fake, client := newFakeAWX(t)
		fake.on(http.MethodPost, "/api/v2/labels/", http.StatusBadRequest, `{"name":["This field is required."]}`)

		rec := models.NewRecord(models.Labels, nil)
		q, _, err := commit(t, client, rec)

		var remote *api.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, 1, q.Len())
		_, hasID := rec.ID()
		assert.False(t, hasID)
	})

	t.Run("create without 201", func(t *testing.T) {
		fake, client := newFakeAWX(t)
		fake.on(http.MethodPost, "/api/v2/labels/", http.StatusOK, `{"id": 9}`)

		rec := models.NewRecord(models.Labels, nil)
		require.NoError(t, rec.Set("name", "l"))
		q, res, err := commit(t, client, rec)

		var remote *api.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, http.StatusOK, remote.StatusCode)
		assert.Contains(t, remote.Detail, "201")
		assert.Zero(t, res.Created)
		assert.Equal(t, 1, q.Len())
		_, hasID := rec.ID()
		assert.False(t, hasID, "response of a non-201 create is not applied")
		assert.True(t, rec.IsChanged())
	})

	t.Run("delete", func(t *testing.T) {
		_, client := newFakeAWX(t) // 404 на всё

		rec := models.Hydrate(models.Labels, map[string]any{"id": 5.0})
		rec.MarkDeleted()
		q, _, err := commit(t, client, rec)

		var remote *api.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.True(t, remote.NotFound())
		assert.Equal(t, 1, q.Len())
	})
}

// Сбой посреди очереди: префикс применен и убран, остаток в очереди
func TestCommit_FailFast_MidBatch(t *testing.T) {
	fake, client := newFakeAWX(t)
	fake.on(http.MethodPost, "/api/v2/labels/", http.StatusCreated, `{"id": 1}`)
	fake.on(http.MethodPut, "/api/v2/labels/2/", http.StatusInternalServerError, `boom`)

	first := models.NewRecord(models.Labels, nil)
	second := models.Hydrate(models.Labels, map[string]any{"id": 2.0, "name": "a"})
	require.NoError(t, second.Set("name", "b"))
	third := models.Hydrate(models.Labels, map[string]any{"id": 3.0})
	third.MarkDeleted()

	q, res, err := commit(t, client, first, second, third)
	require.Error(t, err)

	var commitErr *CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.Equal(t, 1, commitErr.Index)
	assert.Equal(t, 1, commitErr.Committed)
	assert.True(t, commitErr.Partial())
	assert.Same(t, second, commitErr.Record)
	assert.Contains(t, err.Error(), "update of label 2 failed")

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, []*models.Record{second, third}, q.Records())
	assert.False(t, first.Attached(q))

	// DELETE третьей записи не выполнялся
	require.Len(t, fake.calls, 2)
	assert.Equal(t, http.MethodPost, fake.calls[0].method)
	assert.Equal(t, http.MethodPut, fake.calls[1].method)

	// повторный commit после исправления сервера доводит остаток
	fake.on(http.MethodPut, "/api/v2/labels/2/", http.StatusOK, `{}`)
	fake.on(http.MethodDelete, "/api/v2/labels/3/", http.StatusNoContent, ``)

	res, err = NewService(client, nil).Commit(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, 0, q.Len())
}

// Маршрутизация: ровно один вызов нужного типа на запись
func TestCommit_RoutingCallsExactlyOnce(t *testing.T) {
	tests := []struct {
		build      func(t *testing.T) *models.Record
		name       string
		wantMethod string
		wantPath   string
		wantCalls  int
	}{
		{
			name: "deleted",
			build: func(t *testing.T) *models.Record {
				r := models.Hydrate(models.Teams, map[string]any{"id": 4.0})
				require.NoError(t, r.Set("name", "t"))
				r.MarkDeleted()
				return r
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v2/teams/4",
			wantCalls:  1,
		},
		{
			name: "changed",
			build: func(t *testing.T) *models.Record {
				r := models.Hydrate(models.Teams, map[string]any{"id": 4.0})
				require.NoError(t, r.Set("name", "t"))
				return r
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v2/teams/4",
			wantCalls:  1,
		},
		{
			name:       "draft",
			build:      func(t *testing.T) *models.Record { return models.NewRecord(models.Teams, map[string]any{"name": "t"}) },
			wantMethod: http.MethodPost,
			wantPath:   "/api/v2/teams",
			wantCalls:  1,
		},
		{
			name:      "clean with id",
			build:     func(t *testing.T) *models.Record { return models.Hydrate(models.Teams, map[string]any{"id": 4.0}) },
			wantCalls: 0,
		},
		{
			name: "deleted draft",
			build: func(t *testing.T) *models.Record {
				r := models.NewRecord(models.Teams, nil)
				r.MarkDeleted()
				return r
			},
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &api.ClientAPIMock{
				DoFunc: func(ctx context.Context, method, path string, body any) (*api.Response, error) {
					status := http.StatusOK
					if method == http.MethodPost {
						status = http.StatusCreated
					}
					return &api.Response{StatusCode: status, Body: []byte(`{"id": 77}`)}, nil
				},
			}

			rec := tt.build(t)
			q, res, err := commit(t, client, rec)
			require.NoError(t, err)

			calls := client.DoCalls()
			require.Len(t, calls, tt.wantCalls)
			if tt.wantCalls == 1 {
				assert.Equal(t, tt.wantMethod, calls[0].Method)
				assert.Equal(t, tt.wantPath, calls[0].Path)
			}
			assert.Equal(t, 1, res.Total())
			assert.Equal(t, 0, q.Len())
			assert.False(t, rec.IsChanged() && !rec.IsDeleted())
		})
	}
}

func TestCommit_CreateMergesResponse(t *testing.T) {
	client := &api.ClientAPIMock{
		DoFunc: func(ctx context.Context, method, path string, body any) (*api.Response, error) {
			sent := body.(map[string]any)
			assert.Equal(t, "web", sent["name"])
			return &api.Response{
				StatusCode: http.StatusCreated,
				Body:       []byte(`{"id": 12, "name": "web", "url": "/api/v2/hosts/12/", "enabled": true}`),
			}, nil
		},
	}

	rec := models.NewRecord(models.Hosts, nil)
	require.NoError(t, rec.Set("name", "web"))
	require.NoError(t, rec.Set("description", "local only"))

	_, _, err := commit(t, client, rec)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":          12.0,
		"name":        "web",
		"url":         "/api/v2/hosts/12/",
		"enabled":     true,
		"description": "local only",
	}, rec.Export())
	assert.False(t, rec.IsChanged())
	assert.Equal(t, "/api/v2/hosts/12", rec.InstanceEndpoint())
}

func TestCommit_TransportError(t *testing.T) {
	transportErr := errors.New("connection reset")
	client := &api.ClientAPIMock{
		DoFunc: func(ctx context.Context, method, path string, body any) (*api.Response, error) {
			return nil, transportErr
		},
	}

	q, _, err := commit(t, client, models.NewRecord(models.Hosts, nil))
	require.ErrorIs(t, err, transportErr)
	assert.Equal(t, 1, q.Len())
}

func TestCommit_EmptyQueue(t *testing.T) {
	client := &api.ClientAPIMock{}

	res, err := NewService(client, nil).Commit(context.Background(), NewQueue())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total())
	assert.Empty(t, client.DoCalls())
}
