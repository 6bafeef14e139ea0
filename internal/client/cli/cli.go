package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/client/auth"
	"github.com/iudanet/goawx/internal/client/iocli"
	"github.com/iudanet/goawx/internal/client/resource"
	"github.com/iudanet/goawx/internal/client/storage"
	"github.com/iudanet/goawx/internal/client/storage/boltdb"
	"github.com/iudanet/goawx/internal/client/sync"
	"github.com/iudanet/goawx/internal/config"
	"github.com/iudanet/goawx/internal/endpoint"
	"github.com/iudanet/goawx/internal/logger"
)

//go:generate moq -out auth_mock.go . AuthService

// AuthService - операции сессии, которые использует CLI (реализует *auth.Service)
type AuthService interface {
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*storage.AuthData, error)
	Verify(ctx context.Context) (map[string]any, error)
}

var _ AuthService = (*auth.Service)(nil)

// errNotAuthenticated сообщает, что нет ни учетных данных в конфигурации, ни сохраненной сессии
var errNotAuthenticated = fmt.Errorf("%w: run 'awxctl login' or set AWX_TOKEN", auth.ErrNoCredentials)

type Cli struct {
	io              iocli.IO
	cfg             *config.Config
	logger          *slog.Logger
	authService     AuthService
	resourceService resource.Service
	syncService     sync.Service
	closer          func() error
	authenticated   bool
	ready           bool // сервисы уже собраны (setup или тест)
}

func New(io iocli.IO) *Cli {
	return &Cli{io: io, cfg: config.Default(), logger: logger.Nop()}
}

// setup открывает локальное хранилище и собирает сервисы по итоговой конфигурации.
// Сетевых запросов не выполняет.
func (c *Cli) setup(ctx context.Context) error {
	log, err := logger.New(c.cfg.LogLevel, c.cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	c.logger = log

	if err := os.MkdirAll(filepath.Dir(c.cfg.DBPath), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := boltdb.New(ctx, c.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	c.closer = store.Close

	authenticator, err := c.authenticator(ctx, store)
	if err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	opts := []api.Option{api.WithTimeout(c.cfg.Timeout), api.WithUserAgent("awxctl/" + Version)}
	if authenticator != nil {
		opts = append(opts, api.WithAuthenticator(authenticator))
		c.authenticated = true
	}
	client, err := api.NewClient(c.cfg.URL, opts...)
	if err != nil {
		return err
	}

	c.authService = auth.NewService(client, store, c.logger)
	c.resourceService = resource.NewService(client, c.logger)
	c.syncService = sync.NewService(client, store, store, c.logger)
	c.ready = true
	return nil
}

// authenticator выбирает учетные данные: конфигурация важнее сохраненной сессии.
// URL сессии используется, если адрес сервера не задан явно.
func (c *Cli) authenticator(ctx context.Context, store storage.AuthStorage) (api.Authenticator, error) {
	if c.cfg.HasCredentials() {
		return auth.FromCredentials(c.cfg.Token, c.cfg.Username, c.cfg.Password)
	}

	ok, err := store.IsAuthenticated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	session, err := store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if c.cfg.URL == "" {
		c.cfg.URL = session.URL
	}
	if !sameServer(c.cfg.URL, session.URL) {
		c.logger.Warn("Stored session belongs to another server, ignoring it", "session_url", session.URL, "url", c.cfg.URL)
		return nil, nil
	}
	return auth.Bearer(session.Token), nil
}

func sameServer(a, b string) bool {
	ra, errA := endpoint.New(a)
	rb, errB := endpoint.New(b)
	return errA == nil && errB == nil && ra.Base() == rb.Base()
}

func (c *Cli) requireAuth() error {
	if !c.authenticated {
		return errNotAuthenticated
	}
	return nil
}

// Close releases the local database.
func (c *Cli) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer()
	c.closer = nil
	return err
}
