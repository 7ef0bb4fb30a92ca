// Package client talks to the lost & found REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5000"

// DefaultFreshness is how long a fetched report list is served from cache.
const DefaultFreshness = 5 * time.Minute

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// Client issues requests against the backend. It is safe for concurrent use.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	Freshness time.Duration
	Now       func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
	gen   uint64
	group singleflight.Group
}

// New returns a client for baseURL. An empty baseURL means DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		Freshness: DefaultFreshness,
		Now:       time.Now,
		cache:     make(map[string]cacheEntry),
	}
}

// errorBody is the error shape returned by the backend.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one request and decodes a 2xx body into out (if non-nil).
// It never retries.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	op := method + " " + strings.SplitN(path, "?", 2)[0]

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	slog.Debug("api request", "op", op, "status", resp.StatusCode, "duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		return &Error{Kind: KindStatus, Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Err: err}
	}
	return nil
}
