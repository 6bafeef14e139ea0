package handlers

import (
	"context"

	"github.com/iudanet/goawx/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

// principalKey ключ для хранения аутентифицированного пользователя в контексте
const principalKey contextKey = "principal"

// Scope токена, разрешающий изменения
const (
	ScopeRead  = "read"
	ScopeWrite = "write"
)

// Principal - пользователь запроса и scope его учетных данных.
// Basic аутентификация всегда дает ScopeWrite.
type Principal struct {
	User  *models.User
	Scope string
}

// WithPrincipal кладет Principal в контекст (используется AuthMiddleware)
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal извлекает Principal из контекста запроса
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil && p.User != nil
}
