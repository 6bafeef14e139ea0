package resource

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/iudanet/goawx/internal/client/api"
	"github.com/iudanet/goawx/internal/endpoint"
	"github.com/iudanet/goawx/internal/models"
	pkgapi "github.com/iudanet/goawx/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service читает ресурсы AWX и гидрирует их в записи (internal=true)
type Service interface {
	// List возвращает все записи коллекции, проходя по ссылкам next
	List(ctx context.Context, schema *models.Schema, query url.Values) ([]*models.Record, error)

	// Get возвращает одну запись по id
	Get(ctx context.Context, schema *models.Schema, id string) (*models.Record, error)
}

type service struct {
	client api.ClientAPI
	logger *slog.Logger
}

// NewService creates a new resource read service
func NewService(client api.ClientAPI, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{client: client, logger: logger}
}

// List fetches every page of the collection.
func (s *service) List(ctx context.Context, schema *models.Schema, query url.Values) ([]*models.Record, error) {
	path := schema.Endpoint
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var records []*models.Record
	seen := make(map[string]bool)

	for path != "" {
		if seen[path] {
			return nil, fmt.Errorf("list %s: pagination loop at %s", schema.Name, path)
		}
		seen[path] = true

		page, err := s.fetchPage(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", schema.Name, err)
		}
		for _, item := range page.Results {
			records = append(records, models.Hydrate(schema, item))
		}

		path = ""
		if page.Next != nil {
			path = *page.Next
		}
	}

	s.logger.Debug("listed resources", "resource", schema.Name, "count", len(records))
	return records, nil
}

func (s *service) fetchPage(ctx context.Context, path string) (*pkgapi.ListResponse, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(http.MethodGet, path); err != nil {
		return nil, err
	}

	var page pkgapi.ListResponse
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches one record by id.
func (s *service) Get(ctx context.Context, schema *models.Schema, id string) (*models.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("get %s: empty id", schema.Name)
	}
	path := endpoint.Join(schema.Endpoint, id)

	resp, err := s.client.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", schema.Singular, id, err)
	}
	if err := resp.Err(http.MethodGet, path); err != nil {
		return nil, err
	}

	payload, err := resp.Object()
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", schema.Singular, id, err)
	}
	return models.Hydrate(schema, payload), nil
}
