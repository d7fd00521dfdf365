package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a backend response is read.
const maxBodyBytes = 1 << 20

// Client issues REST calls against the club backend on behalf of one identity.
type Client struct {
	baseURL string
	http    *http.Client
	cred    Credential
	logger  *slog.Logger
}

// New creates a client for baseURL. cred is the ambient credential every request
// carries; pass Anonymous{} for unauthenticated calls. A nil httpClient uses a
// client with DefaultTimeout.
func New(baseURL string, httpClient *http.Client, cred Credential) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cred == nil {
		cred = Anonymous{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cred:    cred,
		logger:  slog.Default().With("component", "backend"),
	}
}

// Credential returns the credential the client was constructed with.
func (c *Client) Credential() Credential {
	return c.cred
}

// Get issues a GET to path and decodes the JSON response into out (when non-nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out (when non-nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.cred.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "method", method, "path", path, "error", err)
		return &TransportError{Op: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	c.cred.Capture(resp)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Path: path}
		var msg MessageResponse
		if json.Unmarshal(raw, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
