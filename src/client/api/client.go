// Package api provides the Go SDK for the Topmolt agent leaderboard.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/topmolt/cli/src/common/version"
)

// DefaultBaseURL is used when Config.BaseURL is empty
const DefaultBaseURL = "https://topmolt.io"

// Config configures a Client. The zero value talks to DefaultBaseURL without credentials.
type Config struct {
	// BaseURL overrides the service origin
	BaseURL string
	// APIKey is sent as a bearer token on every request when set
	APIKey string
	// HTTPClient defaults to NewHTTPClient()
	HTTPClient *http.Client
	// UserAgent defaults to "topmolt-sdk/<version>"
	UserAgent string
	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Client is the API client for the Topmolt service.
// A Client never changes after NewClient returns and may be shared between goroutines.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

// NewClient creates a new API client
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.Get().UserAgent("topmolt-sdk")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   baseURL,
		apiKey:    strings.TrimSpace(cfg.APIKey),
		userAgent: userAgent,
		http:      httpClient,
		logger:    logger,
	}
}

// BaseURL returns the origin requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticated reports whether an API key is attached to requests
func (c *Client) Authenticated() bool {
	return c.apiKey != ""
}

// Request describes a single call to the service.
type Request struct {
	// Method defaults to GET
	Method string
	// Path is appended to the base URL and must already carry its query string
	Path string
	// Body is encoded as JSON when non-nil
	Body any
	// Header values override the defaults
	Header http.Header
}

// Do executes req and decodes the JSON response into out.
// HTTP failures are returned as *APIError; undecodable success bodies wrap ErrInvalidResponse.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal body")
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	log := c.logger.With("method", method, "path", req.Path, "request_id", requestID)
	log.Debug("api request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Debug("api transport error", "error", err)
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}
	log.Debug("api response", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		out = &json.RawMessage{}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(ErrInvalidResponse, "%s %s: %v", method, req.Path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}
