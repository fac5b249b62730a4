package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

// maxBodyBytes bounds how much of a backend response is read into memory.
const maxBodyBytes = 1 << 20

// Doer executes HTTP requests. Satisfied by httpclient.Client and
// httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the bookstore backend REST API. Every non-success or
// malformed response is normalized into an AppError carrying a message safe
// to show to the user; call sites never inspect raw HTTP responses.
type Client struct {
	baseURL string
	http    Doer
	logger  *slog.Logger
}

// NewClient creates a backend API client. baseURL is the API root, e.g.
// "https://backend.example.com/api".
func NewClient(baseURL string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		logger:  logger,
	}
}

// do performs a JSON request against the backend. token is attached as a
// bearer credential when non-empty. When out is non-nil the response body is
// decoded into it; an undecodable body is reported as a bad-response error,
// not silently ignored.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Upstream(resp.StatusCode, extractMessage(data, resp.StatusCode))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.WarnContext(ctx, "undecodable backend response",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return apperrors.BadResponse(fmt.Sprintf("unexpected response from %s", path))
	}

	return nil
}

// doRaw performs a request and returns the raw body, for binary downloads
// such as the author monthly PDF report.
func (c *Client) doRaw(ctx context.Context, method, path, token string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, "", fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", apperrors.Upstream(resp.StatusCode, extractMessage(data, resp.StatusCode))
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// extractMessage pulls a human-readable message out of an error response
// body: the JSON "message" field, then "error", then the truncated raw text,
// then a bare status line.
func extractMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if text != "" {
		if len(text) > 250 {
			text = text[:250]
		}
		return text
	}

	return fmt.Sprintf("HTTP %d", status)
}

// dollarsToCents converts the backend's float dollar amounts to cents. All
// domain math happens in cents; this is the only place floats cross over.
func dollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// centsToDollars converts cents back to the backend's float representation
// for request bodies.
func centsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
