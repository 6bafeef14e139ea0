package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/goawx/internal/endpoint"
	"github.com/iudanet/goawx/pkg/api"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "goawx"
	maxRedirects     = 10
)

// Authenticator возвращает заголовок аутентификации для каждого запроса
type Authenticator interface {
	Header() (key, value string)
}

// Client представляет HTTP клиент для взаимодействия с AWX
type Client struct {
	httpClient *http.Client
	resolver   *endpoint.Resolver
	auth       Authenticator
	userAgent  string
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout задает таймаут HTTP клиента
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient подменяет HTTP клиент (например, в тестах)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAuthenticator задает источник заголовка аутентификации
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) {
		c.auth = a
	}
}

// WithUserAgent задает User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient создает новый API клиент для baseURL.
// Префикс /api/v2 в baseURL допускается и отбрасывается.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	resolver, err := endpoint.New(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		resolver:  resolver,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root without the API prefix.
func (c *Client) BaseURL() string {
	return c.resolver.Base()
}

// WithAuth returns a copy of the client that authenticates with a.
// The copy shares the underlying HTTP client.
func (c *Client) WithAuth(a Authenticator) *Client {
	cp := *c
	cp.auth = a
	return &cp
}

// URL resolves path against the base URL. Absolute URLs are returned as is;
// a query string is kept after the normalized path.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	rel, query, hasQuery := strings.Cut(path, "?")
	u := c.resolver.Resolve(rel)
	if hasQuery {
		u += "?" + query
	}
	return u
}

// Do выполняет HTTP запрос и возвращает статус и тело ответа.
// Интерпретация статуса остается вызывающему коду (см. Response.Err).
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	url := c.URL(path)

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.auth != nil {
		if key, value := c.auth.Header(); key != "" {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// Ping запрашивает /api/v2/ping/ (без аутентификации)
func (c *Client) Ping(ctx context.Context) (*api.PingResponse, error) {
	path := api.Prefix + "/ping"
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(http.MethodGet, path); err != nil {
		return nil, err
	}

	var ping api.PingResponse
	if err := resp.Decode(&ping); err != nil {
		return nil, err
	}
	return &ping, nil
}

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI - запрос/ответ к AWX, которым пользуются сервисы клиента
type ClientAPI interface {
	Do(ctx context.Context, method, path string, body any) (*Response, error)
}

var _ ClientAPI = (*Client)(nil)
