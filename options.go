package tmapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tmapi/pkg/constants"
	"github.com/agentstation/tmapi/pkg/errors"
	"github.com/agentstation/tmapi/pkg/logging"
)

// Option is a function that configures a Client
type Option func(*options) error

// options holds the construction-time settings of a Client.
type options struct {
	apiKey    string
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    *zerolog.Logger
}

// defaults returns the default options.
func defaults() *options {
	return &options{
		timeout:   constants.DefaultHTTPTimeout,
		userAgent: constants.AppName + "/" + Version,
		logger:    logging.Default(),
	}
}

// apply applies the given options in order.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// httpClient returns the caller's client or a new one bound to the timeout.
func (o *options) httpClient() *http.Client {
	if o.client != nil {
		return o.client
	}
	return &http.Client{Timeout: o.timeout}
}

// WithAPIKey sets the bearer token. An empty key sends no Authorization header.
func WithAPIKey(key string) Option {
	return func(o *options) error {
		o.apiKey = key
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for all requests. Timeouts, TLS and
// connection pooling are configured on it; WithTimeout is ignored when set.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		if client == nil {
			return errors.NewValidationError("http_client", nil, "must not be nil")
		}
		o.client = client
		return nil
	}
}

// WithTimeout sets the timeout of the default HTTP client. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout < 0 {
			return errors.NewValidationError("timeout", timeout, "must not be negative")
		}
		o.timeout = timeout
		return nil
	}
}

// WithUserAgent overrides the User-Agent header. Empty sends Go's default.
func WithUserAgent(userAgent string) Option {
	return func(o *options) error {
		o.userAgent = userAgent
		return nil
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}
