package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/internal/client/storage"
)

func testSession() *storage.AuthData {
	return &storage.AuthData{
		URL:      "https://awx.example.com",
		Username: "admin",
		UserID:   1,
		Token:    "pat-token",
		TokenID:  12,
	}
}

func TestSaveAuth_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStorage(t)

	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	session := testSession()
	session.URL = " https://awx.example.com/ "
	require.NoError(t, store.SaveAuth(ctx, session))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://awx.example.com", got.URL)
	assert.Equal(t, int64(12), got.TokenID)
	assert.Equal(t, "pat-token", got.Token)
	// исходная структура не меняется
	assert.Equal(t, " https://awx.example.com/ ", session.URL)
}

// Новый login заменяет предыдущую сессию целиком
func TestSaveAuth_ReplacesSession(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStorage(t)

	require.NoError(t, store.SaveAuth(ctx, testSession()))
	require.NoError(t, store.SaveAuth(ctx, &storage.AuthData{URL: "http://localhost:8052", Token: "other", TokenID: 30}))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8052", got.URL)
	assert.Equal(t, int64(30), got.TokenID)
	assert.Empty(t, got.Username)
}

func TestSaveAuth_Invalid(t *testing.T) {
	tests := []struct {
		session *storage.AuthData
		name    string
	}{
		{name: "nil", session: nil},
		{name: "no token", session: &storage.AuthData{URL: "https://awx"}},
		{name: "no url", session: &storage.AuthData{Token: "t"}},
		{name: "blank url", session: &storage.AuthData{URL: "  ", Token: "t"}},
		{name: "bad expires", session: &storage.AuthData{URL: "https://awx", Token: "t", Expires: "tomorrow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, _ := openTestStorage(t)

			err := store.SaveAuth(ctx, tt.session)
			assert.ErrorIs(t, err, storage.ErrInvalidSession)

			_, err = store.GetAuth(ctx)
			assert.ErrorIs(t, err, storage.ErrAuthNotFound, "nothing stored")
		})
	}
}

func TestSaveAuth_DerivesExpiresAt(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStorage(t)

	session := testSession()
	session.Expires = "2030-01-02T03:04:05Z"
	require.NoError(t, store.SaveAuth(ctx, session))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).Unix(), got.ExpiresAt)
}

func TestIsAuthenticated(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		session *storage.AuthData
		name    string
		want    bool
	}{
		{name: "no session", want: false},
		{name: "no expiry", session: testSession(), want: true},
		{
			name:    "valid",
			session: &storage.AuthData{URL: "https://awx", Token: "t", ExpiresAt: now.Add(time.Minute).Unix()},
			want:    true,
		},
		{
			name:    "expired",
			session: &storage.AuthData{URL: "https://awx", Token: "t", ExpiresAt: now.Add(-time.Minute).Unix()},
			want:    false,
		},
		{
			name:    "expires now",
			session: &storage.AuthData{URL: "https://awx", Token: "t", ExpiresAt: now.Unix()},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, _ := openTestStorage(t)
			store.now = func() time.Time { return now }

			if tt.session != nil {
				require.NoError(t, store.SaveAuth(ctx, tt.session))
			}

			ok, err := store.IsAuthenticated(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestDeleteAuth(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStorage(t)

	assert.ErrorIs(t, store.DeleteAuth(ctx), storage.ErrAuthNotFound)

	require.NoError(t, store.SaveAuth(ctx, testSession()))
	require.NoError(t, store.DeleteAuth(ctx))

	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	ok, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuth_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStorage(t)
	dropBucket(t, store, bucketAuth)

	assert.ErrorIs(t, store.SaveAuth(ctx, testSession()), errAuthBucketMissing)
	assert.ErrorIs(t, store.DeleteAuth(ctx), errAuthBucketMissing)

	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, errAuthBucketMissing)

	_, err = store.IsAuthenticated(ctx)
	assert.ErrorIs(t, err, errAuthBucketMissing)
}
