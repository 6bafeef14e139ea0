package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/goawx/internal/models"
	"github.com/iudanet/goawx/internal/server/storage"
)

// SaveToken stores a new access token
func (s *Storage) SaveToken(ctx context.Context, token *models.AccessToken) error {
	query := `
		INSERT INTO tokens (jti, user_id, token_hash, description, scope, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var expiresAt sql.NullTime
	if !token.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: token.ExpiresAt, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, query,
		token.JTI,
		token.UserID,
		token.TokenHash,
		token.Description,
		token.Scope,
		expiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get token id: %w", err)
	}
	token.ID = id

	return nil
}

// GetTokenByJTI retrieves token by JWT ID
func (s *Storage) GetTokenByJTI(ctx context.Context, jti string) (*models.AccessToken, error) {
	query := `
		SELECT id, jti, user_id, token_hash, description, scope, expires_at, created_at
		FROM tokens
		WHERE jti = ?
	`

	token := &models.AccessToken{}
	var expiresAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, jti).Scan(
		&token.ID,
		&token.JTI,
		&token.UserID,
		&token.TokenHash,
		&token.Description,
		&token.Scope,
		&expiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	if expiresAt.Valid {
		token.ExpiresAt = expiresAt.Time
	}

	return token, nil
}

// DeleteToken revokes a token owned by the user
func (s *Storage) DeleteToken(ctx context.Context, tokenID, userID int64) error {
	query := `DELETE FROM tokens WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, tokenID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete access token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTokenNotFound
	}

	return nil
}

// DeleteExpiredTokens removes all expired tokens
func (s *Storage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	query := `DELETE FROM tokens WHERE expires_at IS NOT NULL AND expires_at < ?`

	result, err := s.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
