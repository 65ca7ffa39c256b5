package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/tmapi/pkg/constants"
	"github.com/agentstation/tmapi/pkg/errors"
)

// EnvPrefix is the prefix of the tmapi environment variables.
const EnvPrefix = "TMAPI"

// Config holds the application configuration loaded from config files,
// environment variables and .env files. Command-line flags are applied on
// top by the root command.
type Config struct {
	// Global flags
	Verbose    bool
	Quiet      bool
	Format     string
	OutputFile string

	// Config file
	ConfigFile string

	// Client configuration
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Logging configuration. LogLevel is the explicit --log-level value,
	// EnvLogLevel comes from LOG_LEVEL.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by the root command)
// 2. Environment variables (TMAPI_BASE_URL, TMAPI_API_KEY, TMAPI_TIMEOUT)
// 3. .env and .env.local files
// 4. Config file (configFile, $TMAPI_CONFIG or ~/.tmapi.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first so they are visible to the env binding below
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("format", "")

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "failed to read "+configFile, err)
		}
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("." + constants.AppName)

		// A missing default config file is not an error
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "failed to read config file", err)
			}
		}
	}

	timeout := v.GetDuration("timeout")
	if timeout < 0 {
		return nil, errors.NewConfigError("config", "timeout must not be negative", nil)
	}

	config := &Config{
		Format:     v.GetString("format"),
		OutputFile: v.GetString("output_file"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL: v.GetString("base_url"),
		APIKey:  v.GetString("api_key"),
		Timeout: timeout,

		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.ConfigFile != "" {
		config.ConfigFile = filepath.Clean(config.ConfigFile)
	}

	return config, nil
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so .env.local
// only fills what the environment and .env left empty.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
