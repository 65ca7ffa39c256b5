// Package tmapi is a client for translation-management HTTP APIs that expose
// translation units under a "units/" collection (for example Weblate).
//
// Each method issues exactly one HTTP request and normalizes the response:
// 200 and 201 bodies are decoded into a Record, 204 yields
// {"message": "Deleted successfully"}, and every other status is returned as
// an *errors.APIError carrying the status code and raw body. There are no
// retries, no pagination traversal and no schema validation; unit records are
// passed through untouched.
//
// Example usage:
//
//	client, err := tmapi.New("https://hosted.weblate.org/api/",
//	    tmapi.WithAPIKey(os.Getenv("TMAPI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := client.SearchUnits(ctx, "boards.movingImagesToBoard")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	unit, err := client.UpdateUnit(ctx, "42", tmapi.Record{"target": []string{"hola"}})
package tmapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/agentstation/tmapi/internal/transport"
	"github.com/agentstation/tmapi/pkg/errors"
)

// Version is reported in the default User-Agent.
var Version = "dev"

// Record is an opaque JSON object exchanged with the remote service.
type Record map[string]any

// Units is the set of translation unit operations.
type Units interface {
	ListUnits(ctx context.Context, query string) (Record, error)
	GetUnit(ctx context.Context, id string) (Record, error)
	SearchUnits(ctx context.Context, search string) (Record, error)
	UpdateUnit(ctx context.Context, id string, data Record) (Record, error)
	ReplaceUnit(ctx context.Context, id string, data Record) (Record, error)
	DeleteUnit(ctx context.Context, id string) (Record, error)
}

var _ Units = (*Client)(nil)

// Client talks to one translation-management API. Its configuration is fixed
// at construction, so a Client is safe for concurrent use whenever the
// underlying *http.Client is.
type Client struct {
	transport *transport.Client
	urls      *transport.RequestBuilder
	hasAPIKey bool
	logger    *zerolog.Logger
}

// New creates a Client for baseURL. The base URL is required and must be an
// absolute http or https URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.NewConfigError("client", "base URL is required", nil)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.NewConfigError("client", "invalid base URL", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.NewConfigError("client", "base URL must be an absolute http(s) URL: "+baseURL, nil)
	}

	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		transport: transport.New(transport.Config{
			HTTPClient: o.httpClient(),
			APIKey:     o.apiKey,
			UserAgent:  o.userAgent,
			Logger:     o.logger,
		}),
		urls:      transport.NewRequestBuilder(baseURL),
		hasAPIKey: o.apiKey != "",
		logger:    o.logger,
	}, nil
}

// BaseURL returns the base URL without trailing slashes.
func (c *Client) BaseURL() string {
	return c.urls.BaseURL()
}

// HasAPIKey reports whether requests carry an Authorization header.
func (c *Client) HasAPIKey() bool {
	return c.hasAPIKey
}

// ListUnits lists translation units. An empty query sends no q parameter.
func (c *Client) ListUnits(ctx context.Context, query string) (Record, error) {
	return c.do(ctx, "list_units", http.MethodGet, c.urls.UnitsURL(query), nil)
}

// GetUnit retrieves a single translation unit.
func (c *Client) GetUnit(ctx context.Context, id string) (Record, error) {
	return c.do(ctx, "get_unit", http.MethodGet, c.urls.UnitURL(id), nil)
}

// SearchUnits lists translation units matching search. It issues the same
// request as ListUnits with a non-empty query.
func (c *Client) SearchUnits(ctx context.Context, search string) (Record, error) {
	return c.do(ctx, "search_units", http.MethodGet, c.urls.UnitsURL(search), nil)
}

// UpdateUnit partially updates a unit with PATCH; fields absent from data are left unchanged.
func (c *Client) UpdateUnit(ctx context.Context, id string, data Record) (Record, error) {
	return c.do(ctx, "update_unit", http.MethodPatch, c.urls.UnitURL(id), data)
}

// ReplaceUnit overwrites a unit with PUT.
func (c *Client) ReplaceUnit(ctx context.Context, id string, data Record) (Record, error) {
	return c.do(ctx, "replace_unit", http.MethodPut, c.urls.UnitURL(id), data)
}

// DeleteUnit deletes a unit. A 204 answer yields {"message": "Deleted successfully"}.
func (c *Client) DeleteUnit(ctx context.Context, id string) (Record, error) {
	return c.do(ctx, "delete_unit", http.MethodDelete, c.urls.UnitURL(id), nil)
}

func (c *Client) do(ctx context.Context, operation, method, endpoint string, body any) (Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// a nil Record sends no body at all rather than "null"
	if r, ok := body.(Record); ok && r == nil {
		body = nil
	}

	resp, err := c.transport.Do(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	result, err := transport.DecodeResponse(resp)
	if err != nil {
		c.logger.Debug().Err(err).Str("operation", operation).Msg("Translation API call failed")
		return nil, err
	}
	return Record(result), nil
}
