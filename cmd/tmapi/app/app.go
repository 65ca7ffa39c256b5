// Package app provides the application context and dependency management
// for the tmapi CLI: configuration, logging and the lazily created unit
// client shared by all commands.
package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/tmapi"
	"github.com/agentstation/tmapi/internal/appcontext"
	"github.com/agentstation/tmapi/pkg/errors"
)

var _ appcontext.Interface = (*App)(nil)

// App represents the tmapi application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Unit client (lazy-initialized, singleton)
	mu         sync.Mutex
	units      tmapi.Units
	httpClient *http.Client
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config file;
// functional options may replace any dependency.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, err
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputFile returns the file results are written to.
func (a *App) OutputFile() string {
	return a.config.OutputFile
}

// Units returns the unit client, creating it on first use.
func (a *App) Units() (tmapi.Units, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.units != nil {
		return a.units, nil
	}

	if a.config.BaseURL == "" {
		return nil, errors.NewConfigError("client",
			"base URL is required: use --base-url, "+EnvPrefix+"_BASE_URL or base_url in the config file", nil)
	}

	httpClient := &http.Client{Timeout: a.config.Timeout}
	client, err := tmapi.New(a.config.BaseURL,
		tmapi.WithAPIKey(a.config.APIKey),
		tmapi.WithHTTPClient(httpClient),
		tmapi.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("base_url", client.BaseURL()).
		Bool("api_key", client.HasAPIKey()).
		Dur("timeout", a.config.Timeout).
		Msg("Created unit client")

	a.httpClient = httpClient
	a.units = client
	return client, nil
}

// Shutdown releases idle connections held by the unit client.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	httpClient := a.httpClient
	a.mu.Unlock()

	if httpClient != nil {
		httpClient.CloseIdleConnections()
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration instead of loading one.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config must not be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithUnits sets a custom unit client (useful for testing).
func WithUnits(units tmapi.Units) Option {
	return func(a *App) error {
		a.units = units
		return nil
	}
}
