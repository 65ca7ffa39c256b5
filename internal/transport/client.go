// Package transport wraps the HTTP collaborator used by the tmapi client.
// It owns the header policy, bearer authentication, request URL building and
// the status-code normalization applied to every response.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tmapi/pkg/constants"
	"github.com/agentstation/tmapi/pkg/errors"
	"github.com/agentstation/tmapi/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Config configures a transport Client.
type Config struct {
	// HTTPClient performs the requests. Nil means a client with DefaultHTTPTimeout.
	HTTPClient *http.Client

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// UserAgent is sent when non-empty.
	UserAgent string

	// Logger receives one debug event per request. Nil means logging.Default().
	Logger *zerolog.Logger
}

// Client provides HTTP client functionality with authentication.
type Client struct {
	http      *http.Client
	auth      Authenticator
	apiKey    string
	userAgent string
	logger    *zerolog.Logger
}

// New creates a new transport client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		http:      httpClient,
		auth:      authenticatorFor(cfg.APIKey),
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Do sends exactly one request. A non-nil body is encoded as JSON.
// Errors from the HTTP client are returned as is.
func (c *Client) Do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewParseError("json", "request body", err.Error(), err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", constants.ContentTypeJSON)
	req.Header.Set("Accept", constants.ContentTypeJSON)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	c.auth.Apply(req, c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)

	event := c.logger.Debug().
		Str("method", method).
		Str("url", url).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("Request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("Request completed")

	return resp, nil
}
