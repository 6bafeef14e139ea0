// Package server собирает локальный AWX-совместимый stub сервер:
// маршруты chi, middleware и фоновую очистку просроченных токенов.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/goawx/internal/crypto"
	"github.com/iudanet/goawx/internal/models"
	"github.com/iudanet/goawx/internal/server/handlers"
	"github.com/iudanet/goawx/internal/server/jwt"
	"github.com/iudanet/goawx/internal/server/middleware"
	"github.com/iudanet/goawx/internal/server/storage"
	"github.com/iudanet/goawx/pkg/api"
)

const (
	// Выпуск токенов ограничен по IP
	tokenRate       = 10
	tokenRateWindow = time.Minute

	janitorInterval = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
)

// Store объединяет все хранилища сервера; sqlite.Storage реализует его целиком
type Store interface {
	storage.UserStorage
	storage.TokenStorage
	storage.RecordStorage
}

// Deps - зависимости роутера
type Deps struct {
	Logger  *slog.Logger
	Store   Store
	Issuer  *jwt.Issuer
	Limiter *middleware.RateLimiter
	Version string
}

// NewRouter регистрирует все маршруты /api/v2
func NewRouter(d Deps) http.Handler {
	health := handlers.NewHealthHandler(d.Logger, d.Version)
	auth := handlers.NewAuthHandler(d.Logger, d.Store, d.Store, d.Issuer)
	resources := handlers.NewResourceHandler(d.Logger, d.Store)
	authenticator := middleware.NewAuthenticator(d.Logger, d.Issuer, d.Store, d.Store)

	r := chi.NewRouter()
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(middleware.LoggingWithSkip(d.Logger, []string{api.Prefix + "/ping/"}))
	r.NotFound(handlers.NotFound(d.Logger))
	r.MethodNotAllowed(handlers.MethodNotAllowed(d.Logger))

	r.Route(api.Prefix, func(r chi.Router) {
		// Публичные маршруты. Отдельный subrouter, чтобы другие методы на /ping/
		// получали 405, а не уходили в /{resource}/ за авторизацией
		r.Route("/ping/", func(r chi.Router) {
			r.MethodNotAllowed(handlers.MethodNotAllowed(d.Logger))
			r.Get("/", health.Ping)
		})

		// Защищенные маршруты
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authenticator))

			r.Get("/me/", auth.Me)
			r.With(middleware.RateLimitMiddleware(d.Limiter)).Post("/tokens/", auth.CreateToken)
			r.Delete("/tokens/{id}/", auth.DeleteToken)

			r.Get("/{resource}/", resources.List)
			r.Post("/{resource}/", resources.Create)
			r.Get("/{resource}/{id}/", resources.Get)
			r.Put("/{resource}/{id}/", resources.Update)
			r.Patch("/{resource}/{id}/", resources.Patch)
			r.Delete("/{resource}/{id}/", resources.Delete)
		})
	})

	return r
}

// Server - stub сервер с graceful shutdown
type Server struct {
	logger  *slog.Logger
	store   Store
	limiter *middleware.RateLimiter
	http    *http.Server
}

// New создает сервер, слушающий addr
func New(logger *slog.Logger, store Store, issuer *jwt.Issuer, addr, version string) *Server {
	limiter := middleware.NewRateLimiter(tokenRate, tokenRateWindow, logger)

	handler := NewRouter(Deps{
		Logger:  logger,
		Store:   store,
		Issuer:  issuer,
		Limiter: limiter,
		Version: version,
	})

	return &Server{
		logger:  logger,
		store:   store,
		limiter: limiter,
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}
}

// Run слушает addr до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает соединения ln до отмены ctx, после чего
// дожидается завершения активных запросов
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.janitor(janitorCtx, janitorInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("AWX stub server listening", slog.String("addr", ln.Addr().String()))
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// janitor периодически удаляет просроченные токены
func (s *Server) janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeExpiredTokens(ctx)
		}
	}
}

func (s *Server) purgeExpiredTokens(ctx context.Context) {
	n, err := s.store.DeleteExpiredTokens(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to delete expired tokens", slog.Any("error", err))
		return
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired tokens deleted", slog.Int("count", n))
	}
}

// EnsureAdmin создает суперпользователя, если его еще нет.
// Пароль существующего пользователя не меняется.
func EnsureAdmin(ctx context.Context, logger *slog.Logger, users storage.UserStorage, username, password string) error {
	_, err := users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsSuperuser:  true,
		CreatedAt:    time.Now(),
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.InfoContext(ctx, "admin user created", slog.String("username", username), slog.Int64("user_id", user.ID))
	return nil
}
