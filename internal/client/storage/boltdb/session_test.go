package boltdb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/client/auth"
	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/client/storage/boltdb"
	"github.com/iudanet/goawx/internal/logger"
)

// tokenServer выдает токен 12 и запоминает запросы на его отзыв
type tokenServer struct {
	revoked  []string // Authorization заголовки DELETE запросов
	revokeOK bool
	mu       sync.Mutex
}

func (s *tokenServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.Method + " " + r.URL.Path {
	case "POST /api/v2/tokens/":
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 12, "token": "pat-12", "expires": "2030-01-01T00:00:00Z", "scope": "write",
		})
	case "GET /api/v2/me/":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": 1, "results": []map[string]any{{"id": 3, "username": "admin"}},
		})
	case "DELETE /api/v2/tokens/12/":
		s.mu.Lock()
		s.revoked = append(s.revoked, r.Header.Get("Authorization"))
		s.mu.Unlock()
		if s.revokeOK {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	}
}

func loginWithBolt(t *testing.T, srv *tokenServer) (*auth.Service, *boltdb.Storage, string) {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "awxctl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	client, err := api.NewClient(ts.URL + "/api/v2/")
	require.NoError(t, err)

	svc := auth.NewService(client, store, logger.Nop())
	_, err = svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	return svc, store, ts.URL
}

func TestSession_LoginPersistsRevocationData(t *testing.T) {
	_, store, url := loginWithBolt(t, &tokenServer{revokeOK: true})

	session, err := store.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, url, session.URL)
	assert.Equal(t, int64(12), session.TokenID)
	assert.Equal(t, "pat-12", session.Token)
	assert.Equal(t, int64(3), session.UserID)
	assert.NotZero(t, session.ExpiresAt)
}

func TestSession_LogoutRevokesStoredToken(t *testing.T) {
	tests := []struct {
		name     string
		revokeOK bool
	}{
		{name: "server revokes", revokeOK: true},
		// отзыв best effort: локальная сессия удаляется и при ошибке сервера
		{name: "server fails", revokeOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &tokenServer{revokeOK: tt.revokeOK}
			svc, store, _ := loginWithBolt(t, srv)
			ctx := context.Background()

			require.NoError(t, svc.Logout(ctx))

			srv.mu.Lock()
			assert.Equal(t, []string{"Bearer pat-12"}, srv.revoked)
			srv.mu.Unlock()

			_, err := store.GetAuth(ctx)
			assert.ErrorIs(t, err, storage.ErrAuthNotFound)

			assert.ErrorIs(t, svc.Logout(ctx), auth.ErrNotLoggedIn)
		})
	}
}
