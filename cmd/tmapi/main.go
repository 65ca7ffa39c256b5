// Package main provides the entry point for the tmapi CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/tmapi"
	"github.com/agentstation/tmapi/cmd/tmapi/app"
	"github.com/agentstation/tmapi/pkg/constants"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	tmapi.Version = version

	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := app.ContextWithSignals(context.Background())

	runErr := application.Execute(ctx, os.Args[1:])
	cancel()

	// Shutdown with a fresh context since the signal context may be cancelled
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	if err := application.Shutdown(shutdownCtx); err != nil {
		// Don't let a shutdown error mask the original error
		application.Logger().Error().Err(err).Msg("Shutdown error")
	}
	shutdownCancel()

	app.ExitOnError(runErr)
}
