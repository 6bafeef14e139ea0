package storage

import (
	"context"

	"github.com/iudanet/goawx/internal/models"
)

//go:generate moq -out token_mock.go . TokenStorage

// TokenStorage defines interface for personal access token persistence
type TokenStorage interface {
	// SaveToken stores a new token and sets token.ID
	SaveToken(ctx context.Context, token *models.AccessToken) error

	// GetTokenByJTI retrieves token by its JWT ID
	// Returns ErrTokenNotFound if token doesn't exist
	GetTokenByJTI(ctx context.Context, jti string) (*models.AccessToken, error)

	// DeleteToken revokes a token owned by the user
	// Returns ErrTokenNotFound if no such token belongs to the user
	DeleteToken(ctx context.Context, tokenID, userID int64) error

	// DeleteExpiredTokens removes all expired tokens
	// Returns number of deleted tokens
	DeleteExpiredTokens(ctx context.Context) (int, error)
}
