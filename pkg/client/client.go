// Package client is the typed HTTP wrapper over the SnapLink
// withdrawal API. Every method issues exactly one network call and
// decodes the backend's uniform {error, message, data} envelope; a
// non-zero envelope code is the failure signal, not the HTTP status.
// The client performs no retries — retry policy belongs to callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/snaplink/snaplink-go/pkg/auth"
	"github.com/snaplink/snaplink-go/pkg/config"
)

// Client talks to the SnapLink backend. Construct with New; the zero
// value is not usable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenProvider
	validate   *validator.Validate
	logger     *slog.Logger
}

// New creates a client from config. The token provider is injected by
// the caller; the client never reads ambient storage itself.
func New(cfg config.API, tokens auth.TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
	}
}

// envelope is the uniform response wrapper the backend emits on every
// endpoint. Error == 0 means success regardless of HTTP status.
type envelope struct {
	Error   int             `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

// do performs one HTTP round trip and decodes the envelope's data
// field into out (when non-nil). Transport and decode failures come
// back as *APIError with a generic user message and the cause wrapped.
func (c *Client) do(ctx context.Context, req call, out any) error {
	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	if token, err := c.tokens.Token(ctx); err == nil && token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api call",
		"method", req.method, "path", req.path, "request_id", requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("api transport failure",
			"path", req.path, "request_id", requestID, "error", err)
		return transportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("api read failure",
			"path", req.path, "request_id", requestID, "error", err)
		return transportError(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error("api decode failure",
			"path", req.path, "request_id", requestID,
			"status", resp.StatusCode, "error", err)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return statusError(resp.StatusCode, "", err)
		}
		return transportError(err)
	}

	if env.Error != 0 {
		c.logger.Warn("api application error",
			"path", req.path, "request_id", requestID,
			"status", resp.StatusCode, "code", env.Error, "message", env.Message)
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Error,
			Message:    messageFor(resp.StatusCode, env.Message),
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.logger.Error("api data decode failure",
				"path", req.path, "request_id", requestID, "error", err)
			return transportError(err)
		}
	}
	return nil
}
