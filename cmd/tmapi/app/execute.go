package app

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/tmapi/internal/cmd/output"
	"github.com/agentstation/tmapi/pkg/constants"
)

// Execute runs the tmapi CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Translation unit API client",
		Version: a.version,
		Long: `tmapi talks to translation-management HTTP APIs that expose translation
units under a "units/" collection, such as Weblate.

It can list, search, fetch, partially update, replace and delete units.
Configure the service with --base-url and --api-key, the TMAPI_BASE_URL and
TMAPI_API_KEY environment variables, or ~/.tmapi.yaml.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Flags only override loaded configuration when set, see setupCommand
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.tmapi.yaml)")
	flags.String("base-url", "", "API base URL, e.g. https://hosted.weblate.org/api/")
	flags.String("api-key", "", "API key sent as a bearer token")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "HTTP request timeout")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringP("format", "f", "", "output format: table, json, yaml (default table on a terminal, json otherwise)")
	flags.String("output-file", "", "write results to a file instead of stdout")

	rootCmd.SetVersionTemplate(constants.AppName + " {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It applies explicitly set
// flags on top of the loaded configuration and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	if flags.Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	if flags.Changed("base-url") {
		a.config.BaseURL = mustGetString(cmd, "base-url")
	}
	if flags.Changed("api-key") {
		a.config.APIKey = mustGetString(cmd, "api-key")
	}
	if flags.Changed("timeout") {
		a.config.Timeout = mustGetDuration(cmd, "timeout")
	}
	if flags.Changed("verbose") {
		a.config.Verbose = mustGetBool(cmd, "verbose")
	}
	if flags.Changed("quiet") {
		a.config.Quiet = mustGetBool(cmd, "quiet")
	}
	if flags.Changed("log-level") {
		a.config.LogLevel = mustGetString(cmd, "log-level")
	}
	if flags.Changed("format") {
		a.config.Format = mustGetString(cmd, "format")
	}
	if flags.Changed("output-file") {
		a.config.OutputFile = mustGetString(cmd, "output-file")
	}

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	if flags.Changed("config") || flags.Changed("verbose") || flags.Changed("quiet") || flags.Changed("log-level") {
		logger := NewLogger(a.config)
		a.logger = &logger
	}

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.CreateUnitsCommand())
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetDuration retrieves a duration flag value or panics if the flag doesn't exist.
func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
