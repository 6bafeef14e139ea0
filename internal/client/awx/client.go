// Package awx собирает транспорт, проверку учетных данных, чтение ресурсов
// и writeback очередь в один клиент.
package awx

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/client/auth"
	"github.com/iudanet/goawx/internal/client/resource"
	"github.com/iudanet/goawx/internal/client/writeback"
	"github.com/iudanet/goawx/internal/models"
)

// Client is an authenticated AWX session with its own write-back queue.
// Client is not safe for concurrent use.
type Client struct {
	api       *api.Client
	resources resource.Service
	writer    *writeback.Service
	queue     *writeback.Queue
	user      map[string]any
	logger    *slog.Logger
}

// New создает клиент и сразу проверяет учетные данные запросом /api/v2/me/.
// Ошибка проверки оборачивает auth.ErrUnauthorized или auth.ErrUnknownEndpoint.
func New(ctx context.Context, baseURL string, authenticator api.Authenticator, logger *slog.Logger, opts ...api.Option) (*Client, error) {
	if authenticator == nil {
		return nil, auth.ErrNoCredentials
	}
	if logger == nil {
		logger = slog.Default()
	}

	all := make([]api.Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, api.WithAuthenticator(authenticator))

	transport, err := api.NewClient(baseURL, all...)
	if err != nil {
		return nil, err
	}

	user, err := auth.NewService(transport, nil, logger).Verify(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticate against %s: %w", transport.BaseURL(), err)
	}
	logger.Debug("Authenticated", "url", transport.BaseURL(), "username", user["username"])

	return &Client{
		api:       transport,
		resources: resource.NewService(transport, logger),
		writer:    writeback.NewService(transport, logger),
		queue:     writeback.NewQueue(),
		user:      user,
		logger:    logger,
	}, nil
}

// User returns the identity record returned by /api/v2/me/.
func (c *Client) User() map[string]any {
	return c.user
}

// API returns the underlying transport.
func (c *Client) API() *api.Client {
	return c.api
}

// List возвращает все записи коллекции resource ("projects", "project", "job-templates").
func (c *Client) List(ctx context.Context, resourceName string, query url.Values) ([]*models.Record, error) {
	schema, err := models.Lookup(resourceName)
	if err != nil {
		return nil, err
	}
	return c.resources.List(ctx, schema, query)
}

// Get возвращает одну запись по id
func (c *Client) Get(ctx context.Context, resourceName, id string) (*models.Record, error) {
	schema, err := models.Lookup(resourceName)
	if err != nil {
		return nil, err
	}
	return c.resources.Get(ctx, schema, id)
}

// Draft returns an empty unsaved record of the resource type.
func (c *Client) Draft(resourceName string) (*models.Record, error) {
	schema, err := models.Lookup(resourceName)
	if err != nil {
		return nil, err
	}
	return models.NewRecord(schema, nil), nil
}

// Add ставит запись в очередь на commit
func (c *Client) Add(rec *models.Record) error {
	return c.queue.Enqueue(rec)
}

// AddAll ставит в очередь все записи или ни одной
func (c *Client) AddAll(recs []*models.Record) error {
	return c.queue.EnqueueAll(recs)
}

// Delete помечает запись удаленной и ставит ее в очередь
func (c *Client) Delete(rec *models.Record) error {
	return c.queue.MarkAndEnqueue(rec)
}

// Pending returns the queued records in commit order.
func (c *Client) Pending() []*models.Record {
	return c.queue.Records()
}

// Commit applies the queued records. See writeback.Service.Commit.
func (c *Client) Commit(ctx context.Context) (*writeback.Result, error) {
	return c.writer.Commit(ctx, c.queue)
}
