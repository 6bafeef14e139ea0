package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/validation"
	pkgapi "github.com/iudanet/goawx/pkg/api"
)

const (
	mePath     = pkgapi.Prefix + "/me"
	tokensPath = pkgapi.Prefix + "/tokens"

	tokenDescription = "goawx"
	tokenScope       = "write"
)

// Service предоставляет функции авторизации
type Service struct {
	client *api.Client
	store  storage.AuthStorage
	logger *slog.Logger
}

// NewService создает новый сервис авторизации.
// store может быть nil, если сессии не сохраняются.
func NewService(client *api.Client, store storage.AuthStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Verify проверяет учетные данные клиента запросом /api/v2/me/ и
// возвращает текущего пользователя.
func (s *Service) Verify(ctx context.Context) (map[string]any, error) {
	return verify(ctx, s.client)
}

func verify(ctx context.Context, client *api.Client) (map[string]any, error) {
	resp, err := client.Do(ctx, http.MethodGet, mePath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownEndpoint, err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, resp.Err(http.MethodGet, mePath))
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, client.URL(mePath))
	}
	if err := resp.Err(http.MethodGet, mePath); err != nil {
		return nil, err
	}

	var me pkgapi.MeResponse
	if err := resp.Decode(&me); err != nil {
		return nil, err
	}
	if len(me.Results) == 0 {
		return nil, fmt.Errorf("%w: empty identity response", ErrUnauthorized)
	}
	return me.Results[0], nil
}

// Login выпускает personal access token по логину и паролю и сохраняет сессию
func (s *Service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	// 1. Выпускаем токен с basic аутентификацией
	basic := s.client.WithAuth(Basic{Username: username, Password: password})
	resp, err := basic.Do(ctx, http.MethodPost, tokensPath, pkgapi.TokenRequest{
		Description: tokenDescription,
		Scope:       tokenScope,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("login failed: %w", ErrUnauthorized)
	}
	if err := resp.Err(http.MethodPost, tokensPath); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	var token pkgapi.TokenResponse
	if err := resp.Decode(&token); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := validation.ValidateToken(token.Token); err != nil {
		return nil, fmt.Errorf("login failed: server returned %w", err)
	}

	// 2. Проверяем новый токен и узнаем ID пользователя
	me, err := verify(ctx, s.client.WithAuth(Bearer(token.Token)))
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	session := &storage.AuthData{
		URL:      s.client.BaseURL(),
		Username: username,
		UserID:   toInt64(me["id"]),
		Token:    token.Token,
		TokenID:  token.ID,
		Expires:  token.Expires,
	}
	if token.Expires != "" {
		if exp, err := time.Parse(time.RFC3339, token.Expires); err == nil {
			session.ExpiresAt = exp.Unix()
		} else {
			s.logger.Warn("unparseable token expiry", "expires", token.Expires, "error", err)
		}
	}

	// 3. Сохраняем сессию
	if s.store != nil {
		if err := s.store.SaveAuth(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	s.logger.Info("logged in", "username", username, "token_id", token.ID)
	return session, nil
}

// Session загружает сохраненную сессию
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	if s.store == nil {
		return nil, ErrNotLoggedIn
	}
	ok, err := s.store.IsAuthenticated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return s.store.GetAuth(ctx)
}

// Logout выполняет выход из системы
// Удаляет локальную сессию и пытается отозвать токен на сервере
func (s *Service) Logout(ctx context.Context) error {
	if s.store == nil {
		return ErrNotLoggedIn
	}

	// 1. Получаем текущую сессию
	session, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return ErrNotLoggedIn
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	// 2. Пытаемся отозвать токен на сервере (best effort)
	if session.TokenID != 0 {
		path := tokensPath + "/" + strconv.FormatInt(session.TokenID, 10)
		resp, err := s.client.WithAuth(Bearer(session.Token)).Do(ctx, http.MethodDelete, path, nil)
		if err == nil {
			err = resp.Err(http.MethodDelete, path)
		}
		if err != nil {
			// Не прерываем процесс, если сервер недоступен
			s.logger.Warn("failed to revoke token on server", "token_id", session.TokenID, "error", err)
		}
	}

	// 3. Всегда удаляем локальные данные
	if err := s.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}

	s.logger.Info("logged out", "username", session.Username)
	return nil
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
