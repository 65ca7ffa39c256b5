// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tmapi"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/tmapi/app implements it; tests use Mock.
type Interface interface {
	// Units returns the unit client, creating it lazily from the
	// configured base URL, API key and timeout.
	Units() (tmapi.Units, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (json, yaml, table).
	// An empty value means auto-detect.
	OutputFormat() string

	// OutputFile returns the file results are written to, or "" for stdout.
	OutputFile() string

	// Version returns the application version string.
	Version() string
}
