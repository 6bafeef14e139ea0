package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/goawx/internal/crypto"
	"github.com/iudanet/goawx/internal/server/handlers"
	"github.com/iudanet/goawx/internal/server/jwt"
	"github.com/iudanet/goawx/internal/server/storage"
)

var (
	// errNoCredentials - заголовок Authorization отсутствует или с неизвестной схемой
	errNoCredentials = errors.New("no credentials")
	// errBadCredentials - учетные данные переданы, но не прошли проверку
	errBadCredentials = errors.New("bad credentials")
)

// Authenticator проверяет Bearer JWT и Basic учетные данные
type Authenticator struct {
	logger *slog.Logger
	issuer *jwt.Issuer
	users  storage.UserStorage
	tokens storage.TokenStorage
	now    func() time.Time
}

// NewAuthenticator создает Authenticator
func NewAuthenticator(logger *slog.Logger, issuer *jwt.Issuer, users storage.UserStorage, tokens storage.TokenStorage) *Authenticator {
	return &Authenticator{
		logger: logger,
		issuer: issuer,
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// AuthMiddleware создает middleware для проверки учетных данных.
// Bearer токен должен быть выпущен через /api/v2/tokens/ и не отозван,
// Basic проверяет пароль по bcrypt хешу.
func AuthMiddleware(a *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := a.authenticate(r)
			if err != nil {
				detail := handlers.DetailInvalidAuth
				if errors.Is(err, errNoCredentials) {
					detail = handlers.DetailNotAuthenticated
				} else {
					a.logger.WarnContext(r.Context(), "Authentication failed",
						"error", err,
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
					)
				}
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				handlers.SendDetail(w, a.logger, detail, http.StatusUnauthorized)
				return
			}

			a.logger.DebugContext(r.Context(), "User authenticated",
				"user_id", principal.User.ID,
				"username", principal.User.Username,
				"scope", principal.Scope,
			)

			next.ServeHTTP(w, r.WithContext(handlers.WithPrincipal(r.Context(), principal)))
		})
	}
}

func (a *Authenticator) authenticate(r *http.Request) (*handlers.Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errNoCredentials
	}

	// Ожидаем формат: "<scheme> <credentials>"
	scheme, credentials, _ := strings.Cut(header, " ")
	switch {
	case strings.EqualFold(scheme, "Bearer"):
		return a.bearer(r, strings.TrimSpace(credentials))
	case strings.EqualFold(scheme, "Basic"):
		username, password, ok := r.BasicAuth()
		if !ok {
			return nil, fmt.Errorf("%w: malformed basic header", errBadCredentials)
		}
		return a.basic(r, username, password)
	}
	return nil, errNoCredentials
}

func (a *Authenticator) bearer(r *http.Request, token string) (*handlers.Principal, error) {
	ctx := r.Context()

	claims, err := a.issuer.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadCredentials, err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadCredentials, err)
	}

	// Токен должен существовать в БД: удаленный токен считается отозванным
	stored, err := a.tokens.GetTokenByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, fmt.Errorf("%w: token revoked", errBadCredentials)
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if stored.UserID != userID {
		return nil, fmt.Errorf("%w: token owner mismatch", errBadCredentials)
	}
	if !stored.ExpiresAt.IsZero() && a.now().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("%w: token expired", errBadCredentials)
	}
	if err := crypto.VerifyToken(token, stored.TokenHash); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadCredentials, err)
	}

	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadCredentials, err)
	}
	return &handlers.Principal{User: user, Scope: stored.Scope}, nil
}

func (a *Authenticator) basic(r *http.Request, username, password string) (*handlers.Principal, error) {
	user, err := a.users.GetUserByUsername(r.Context(), username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadCredentials, err)
	}
	if err := crypto.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadCredentials, err)
	}
	return &handlers.Principal{User: user, Scope: handlers.ScopeWrite}, nil
}
