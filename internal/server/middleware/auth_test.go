package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/internal/crypto"
	"github.com/iudanet/goawx/internal/models"
	"github.com/iudanet/goawx/internal/server/handlers"
	"github.com/iudanet/goawx/internal/server/jwt"
	"github.com/iudanet/goawx/internal/server/storage"
	"github.com/iudanet/goawx/pkg/api"
)

const testSecret = "test-secret-key-0123"

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testHandler is a simple handler that checks the principal in context
func testHandler(t *testing.T, expectedUserID int64, expectedScope string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := handlers.GetPrincipal(r.Context())
		require.True(t, ok, "principal should be in context")
		assert.Equal(t, expectedUserID, p.User.ID)
		assert.Equal(t, expectedScope, p.Scope)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// authFixture хранит пользователя, выпущенный токен и моки хранилищ
type authFixture struct {
	user   *models.User
	users  *storage.UserStorageMock
	tokens *storage.TokenStorageMock
	issuer *jwt.Issuer
	stored map[string]*models.AccessToken
	token  string
}

func newAuthFixture(t *testing.T, scope string) *authFixture {
	t.Helper()

	hash, err := crypto.HashPassword("secret")
	require.NoError(t, err)

	f := &authFixture{
		user:   &models.User{ID: 3, Username: "admin", PasswordHash: hash},
		issuer: jwt.NewIssuer(testSecret, time.Hour),
		stored: make(map[string]*models.AccessToken),
	}

	token, claims, err := f.issuer.Issue(f.user.ID, f.user.Username, scope)
	require.NoError(t, err)
	tokenHash, err := crypto.HashToken(token)
	require.NoError(t, err)
	f.token = token
	f.stored[claims.ID] = &models.AccessToken{
		ID:        1,
		JTI:       claims.ID,
		UserID:    f.user.ID,
		TokenHash: tokenHash,
		Scope:     scope,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	f.users = &storage.UserStorageMock{
		GetUserByIDFunc: func(ctx context.Context, userID int64) (*models.User, error) {
			if userID == f.user.ID {
				return f.user, nil
			}
			return nil, storage.ErrUserNotFound
		},
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username == f.user.Username {
				return f.user, nil
			}
			return nil, storage.ErrUserNotFound
		},
	}
	f.tokens = &storage.TokenStorageMock{
		GetTokenByJTIFunc: func(ctx context.Context, jti string) (*models.AccessToken, error) {
			if tok, ok := f.stored[jti]; ok {
				return tok, nil
			}
			return nil, storage.ErrTokenNotFound
		},
	}
	return f
}

func (f *authFixture) handler(t *testing.T, scope string) http.Handler {
	a := NewAuthenticator(setupTestLogger(), f.issuer, f.users, f.tokens)
	return AuthMiddleware(a)(testHandler(t, f.user.ID, scope))
}

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v2/me/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func basic(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func detailOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Detail
}

func TestAuthMiddleware_BearerSuccess(t *testing.T) {
	for _, scope := range []string{handlers.ScopeWrite, handlers.ScopeRead} {
		t.Run(scope, func(t *testing.T) {
			f := newAuthFixture(t, scope)

			w := serve(f.handler(t, scope), "Bearer "+f.token)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "OK", w.Body.String())
			require.Len(t, f.tokens.GetTokenByJTICalls(), 1)
		})
	}
}

func TestAuthMiddleware_BasicSuccess(t *testing.T) {
	f := newAuthFixture(t, handlers.ScopeRead)

	// Basic всегда дает write scope
	w := serve(f.handler(t, handlers.ScopeWrite), basic("admin", "secret"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.tokens.GetTokenByJTICalls())
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	f := newAuthFixture(t, handlers.ScopeWrite)

	for _, header := range []string{"", "Digest abc", "Token"} {
		w := serve(f.handler(t, handlers.ScopeWrite), header)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Equal(t, `Bearer realm="api"`, w.Header().Get("WWW-Authenticate"))
		assert.Equal(t, handlers.DetailNotAuthenticated, detailOf(t, w))
	}
}

func TestAuthMiddleware_Rejected(t *testing.T) {
	tests := []struct {
		prepare func(f *authFixture)
		header  func(f *authFixture) string
		name    string
	}{
		{
			name:   "garbage bearer",
			header: func(f *authFixture) string { return "Bearer not.a.jwt" },
		},
		{
			name: "wrong signing secret",
			header: func(f *authFixture) string {
				other := jwt.NewIssuer("another-secret-0123456", time.Hour)
				token, _, _ := other.Issue(f.user.ID, f.user.Username, handlers.ScopeWrite)
				return "Bearer " + token
			},
		},
		{
			name: "revoked token",
			prepare: func(f *authFixture) {
				clear(f.stored)
			},
			header: func(f *authFixture) string { return "Bearer " + f.token },
		},
		{
			name: "owner mismatch",
			prepare: func(f *authFixture) {
				for _, tok := range f.stored {
					tok.UserID = 99
				}
			},
			header: func(f *authFixture) string { return "Bearer " + f.token },
		},
		{
			name: "expired in storage",
			prepare: func(f *authFixture) {
				for _, tok := range f.stored {
					tok.ExpiresAt = time.Now().Add(-time.Minute)
				}
			},
			header: func(f *authFixture) string { return "Bearer " + f.token },
		},
		{
			name: "hash mismatch",
			prepare: func(f *authFixture) {
				for _, tok := range f.stored {
					tok.TokenHash = "00"
				}
			},
			header: func(f *authFixture) string { return "Bearer " + f.token },
		},
		{
			name: "user deleted",
			prepare: func(f *authFixture) {
				f.user.ID = 42
			},
			header: func(f *authFixture) string { return "Bearer " + f.token },
		},
		{
			name:   "basic wrong password",
			header: func(f *authFixture) string { return basic("admin", "wrong") },
		},
		{
			name:   "basic unknown user",
			header: func(f *authFixture) string { return basic("ghost", "secret") },
		},
		{
			name:   "basic malformed",
			header: func(f *authFixture) string { return "Basic !!!" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t, handlers.ScopeWrite)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			a := NewAuthenticator(setupTestLogger(), f.issuer, f.users, f.tokens)
			h := AuthMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be called")
			}))

			w := serve(h, tt.header(f))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, handlers.DetailInvalidAuth, detailOf(t, w))
		})
	}
}

func TestAuthMiddleware_TokenStorageError(t *testing.T) {
	f := newAuthFixture(t, handlers.ScopeWrite)
	f.tokens.GetTokenByJTIFunc = func(ctx context.Context, jti string) (*models.AccessToken, error) {
		return nil, errors.New("db down")
	}

	w := serve(f.handler(t, handlers.ScopeWrite), "Bearer "+f.token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.Len(t, f.tokens.GetTokenByJTICalls(), 1)
}
