package storage

import (
	"context"
)

//go:generate moq -out authstorage_mock.go . AuthStorage

// AuthStorage defines interface for storing the login session on client.
// Tokens are stored as-is; the database file is created with 0600 permissions.
type AuthStorage interface {
	// SaveAuth stores authentication data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a non-expired session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the login session in storage
type AuthData struct {
	URL       string `json:"url"`        // базовый URL сервера, для которого выдан токен
	Username  string `json:"username"`   // имя пользователя AWX
	Token     string `json:"token"`      // personal access token
	Expires   string `json:"expires"`    // время истечения в формате RFC3339 (как вернул сервер)
	UserID    int64  `json:"user_id"`    // ID пользователя AWX
	TokenID   int64  `json:"token_id"`   // ID токена на сервере
	ExpiresAt int64  `json:"expires_at"` // unix время истечения, 0 - бессрочно
}
