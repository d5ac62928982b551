package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/middleware"
	"github.com/sony/gobreaker"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the remote banking backend over HTTP. Payloads are returned as decoded
// JSON (numbers kept as json.Number) and never interpreted here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used for every call.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBreakerSettings replaces the circuit breaker guarding the backend.
func WithBreakerSettings(settings gobreaker.Settings) ClientOption {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(settings)
	}
}

// DefaultBreakerSettings opens the breaker after five consecutive failures and probes
// again after thirty seconds. Business rejections (4xx) do not count as failures.
func DefaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "banking-backend",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var remoteErr *apperrors.RemoteError
			if errors.As(err, &remoteErr) {
				return remoteErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("Circuit breaker changed state", slog.String("breaker", name), slog.String("from", from.String()), slog.String("to", to.String()))
		},
	}
}

// NewClient creates a backend client for baseURL, e.g. "https://bank.example.com".
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    gobreaker.NewCircuitBreaker(DefaultBreakerSettings()),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.BackendClient = (*Client)(nil)

// do performs one call. A nil result with a nil error means the backend answered 2xx
// without a body.
func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any) (any, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.roundTrip(ctx, method, path, query, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("banking backend unavailable for %s %s: %w", method, path, err)
	}
	return result, err
}

func (c *Client) roundTrip(ctx context.Context, method string, path string, query url.Values, body any) (any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := middleware.GetBearerTokenFromCtx(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug("Backend call finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(method, path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return decoded, nil
}

// remoteError turns a non-2xx response into a RemoteError, taking the message from the
// body when the backend sent one.
func remoteError(method string, path string, resp *http.Response) error {
	remoteErr := &apperrors.RemoteError{Method: method, Path: path, StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		remoteErr.Message = body.Message
		if remoteErr.Message == "" {
			remoteErr.Message = body.Error
		}
	} else if text := strings.TrimSpace(string(data)); text != "" && len(text) < 512 {
		remoteErr.Message = text
	}
	return remoteErr
}

// pageContent unwraps a paged response ({"content": [...]}) or a bare array.
func pageContent(method string, path string, decoded any) ([]any, error) {
	switch v := decoded.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return v, nil
	case map[string]any:
		if content, ok := v["content"].([]any); ok {
			return content, nil
		}
		if content, ok := v["data"].([]any); ok {
			return content, nil
		}
	}
	return nil, fmt.Errorf("unexpected %s %s response shape %T", method, path, decoded)
}
