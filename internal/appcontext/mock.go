package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tmapi"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	UnitsFunc        func() (tmapi.Units, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	OutputFileFunc   func() string
	VersionFunc      func() string
}

var _ Interface = (*Mock)(nil)

// Units returns a unit client using the mock function or nil.
func (m *Mock) Units() (tmapi.Units, error) {
	if m.UnitsFunc != nil {
		return m.UnitsFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// OutputFile returns the output file using the mock function or "".
func (m *Mock) OutputFile() string {
	if m.OutputFileFunc != nil {
		return m.OutputFileFunc()
	}
	return ""
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}
