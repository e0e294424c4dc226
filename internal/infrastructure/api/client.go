// Package api implements the HTTP transport for the digest backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/takumin/newsbrief/internal/application/usecase"
	"github.com/takumin/newsbrief/internal/domain/digest"
)

// Client posts digest requests to a newsbrief-compatible backend. It
// implements usecase.Transport; the per-submission deadline arrives via
// the request context, so the underlying http.Client carries no timeout
// of its own.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a digest API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
	}
}

// Send issues one POST /api/digest attempt.
func (c *Client) Send(ctx context.Context, req digest.Request) usecase.Attempt {
	payload, err := json.Marshal(req)
	if err != nil {
		return usecase.Attempt{Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/digest", bytes.NewReader(payload))
	if err != nil {
		return usecase.Attempt{Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return usecase.Attempt{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return usecase.Attempt{Err: fmt.Errorf("read response: %w", err)}
	}

	return usecase.Attempt{Status: resp.StatusCode, Body: body}
}

// Health reports whether the backend answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
