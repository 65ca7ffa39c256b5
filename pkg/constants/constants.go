// Package constants provides shared constants used throughout the tmapi codebase.
// This includes timeouts, file permissions and wire-level values that must stay
// consistent between the client library and the CLI.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the timeout applied to the default HTTP client
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds CLI cleanup once a command returns
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Wire constants
const (
	// AppName is the CLI name and the base of its config file name.
	AppName = "tmapi"

	// UnitsPath is the collection path of translation units under the base URL.
	UnitsPath = "units"

	// ContentTypeJSON is sent as both Content-Type and Accept.
	ContentTypeJSON = "application/json"

	// DeletedMessage is returned in place of an empty 204 response.
	DeletedMessage = "Deleted successfully"
)
