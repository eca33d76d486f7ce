// Package apiclient реализует типизированный HTTP-клиент удалённого API проката.
//
// Перед каждым запросом клиент спрашивает TokenSource о текущем токене и,
// если он есть, добавляет заголовок Authorization: Bearer. Повторов нет,
// таймаут только транспортный или из конфига. Ответ с кодом не из 2xx
// превращается в *APIError с сообщением сервера, если оно было.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
)

const maxBodySize = 10 << 20

// TokenSource отдаёт токен текущей сессии и умеет её завершить.
type TokenSource interface {
	// Token возвращает токен, если пользователь вошёл.
	Token(ctx context.Context) (string, bool)
	// Expire вызывается, когда API ответил 401 на запрос с токеном.
	Expire(ctx context.Context)
}

type anonymous struct{}

func (anonymous) Token(context.Context) (string, bool) { return "", false }
func (anonymous) Expire(context.Context)               {}

// Client ходит в API от имени пользователя текущего запроса.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	metrics    *Metrics
	log        *slog.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт http.Client, например с таймаутом.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout задаёт таймаут запроса. Ноль оставляет транспортный по умолчанию.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithTokenSource задаёт источник токена.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithMetrics включает метрики исходящих запросов.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger задаёт логгер.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New создаёт клиент для базового адреса API, например http://localhost:2005/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tokens:     anonymous{},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	// anonymous запросы уходят без токена, например вход.
	anonymous bool
	// lenient разрешает ответ, который не разбирается в out.
	lenient bool
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	authed := false
	if !cl.anonymous {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
			authed = true
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(cl.op, 0, time.Since(start))
		return fmt.Errorf("%s: %w", cl.op, err)
	}
	defer resp.Body.Close()
	c.metrics.observe(cl.op, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", cl.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized && authed {
			c.log.Warn("api rejected session token", slog.String("op", cl.op))
			c.tokens.Expire(ctx)
		}
		return fmt.Errorf("%s: %w", cl.op, apiErr)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if cl.lenient {
			c.log.Debug("ignoring undecodable response", slog.String("op", cl.op), sl.Err(err))
			return nil
		}
		return fmt.Errorf("%s: decode response: %w", cl.op, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, call{op: op, method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path string, in, out any) error {
	body, err := jsonBody(in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(ctx, call{
		op:          op,
		method:      method,
		path:        path,
		body:        body,
		contentType: "application/json",
		lenient:     true,
	}, out)
}

func (c *Client) delete(ctx context.Context, op, path string) error {
	return c.do(ctx, call{op: op, method: http.MethodDelete, path: path}, nil)
}
