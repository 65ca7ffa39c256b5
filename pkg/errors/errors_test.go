package errors_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/agentstation/tmapi/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestAPIError(t *testing.T) {
	t.Run("with endpoint", func(t *testing.T) {
		err := pkgerrors.NewAPIError("GET", "https://host/api/units/42/", 404, []byte(`{"detail":"Not found."}`))
		assert.Contains(t, err.Error(), "GET")
		assert.Contains(t, err.Error(), "https://host/api/units/42/")
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "Not found.")
		assert.Equal(t, []byte(`{"detail":"Not found."}`), err.Body)
	})

	t.Run("empty body falls back to status text", func(t *testing.T) {
		err := &pkgerrors.APIError{StatusCode: 502}
		assert.Equal(t, "API error (status 502): Bad Gateway", err.Error())
	})

	t.Run("long body is truncated in message only", func(t *testing.T) {
		body := []byte(strings.Repeat("x", 1000))
		err := pkgerrors.NewAPIError("GET", "https://host/api/units/", 500, body)
		assert.Less(t, len(err.Message), len(body))
		assert.True(t, strings.HasSuffix(err.Message, "..."))
		assert.Len(t, err.Body, 1000)
	})

	t.Run("status classification", func(t *testing.T) {
		tests := []struct {
			status int
			target error
		}{
			{404, pkgerrors.ErrNotFound},
			{401, pkgerrors.ErrUnauthorized},
			{403, pkgerrors.ErrUnauthorized},
			{429, pkgerrors.ErrRateLimited},
			{500, pkgerrors.ErrServiceUnavailable},
			{503, pkgerrors.ErrServiceUnavailable},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
				err := pkgerrors.NewAPIError("GET", "", tt.status, nil)
				assert.True(t, errors.Is(err, tt.target))
			})
		}
	})

	t.Run("400 matches no sentinel", func(t *testing.T) {
		err := pkgerrors.NewAPIError("PATCH", "", 400, []byte("bad"))
		assert.False(t, pkgerrors.IsNotFound(err))
		assert.False(t, pkgerrors.IsUnauthorized(err))
		assert.False(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsServiceUnavailable(err))
		assert.True(t, pkgerrors.IsAPIError(err))
	})
}

func TestStatusCode(t *testing.T) {
	err := fmt.Errorf("get unit: %w", pkgerrors.NewAPIError("GET", "", 418, nil))
	code, ok := pkgerrors.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, 418, code)

	code, ok = pkgerrors.StatusCode(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
	assert.Zero(t, code)
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "set",
			Message: "expected key=value",
		}
		assert.Equal(t, "validation failed for field set: expected key=value", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "no data"}
		assert.Equal(t, "validation failed: no data", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing protocol scheme")
	err := pkgerrors.NewConfigError("client", "invalid base URL", base)
	assert.Contains(t, err.Error(), "client")
	assert.Contains(t, err.Error(), "invalid base URL")
	assert.Equal(t, base, err.Unwrap())
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidConfig))

	err = &pkgerrors.ConfigError{Message: "base URL is required"}
	assert.Equal(t, "configuration error: base URL is required", err.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "data.yaml", "invalid indentation", nil)
		assert.Equal(t, "yaml parse error in data.yaml: invalid indentation", err.Error())
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "json", Message: "unexpected end of JSON input"}
		assert.Equal(t, "json parse error: unexpected end of JSON input", err.Error())
	})

	t.Run("wrap", func(t *testing.T) {
		baseErr := errors.New("EOF")
		wrapped := pkgerrors.WrapParse("json", "response", baseErr)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "json", parseErr.Format)
		assert.Equal(t, "response", parseErr.Source)
		assert.Equal(t, baseErr, errors.Unwrap(wrapped))

		assert.Nil(t, pkgerrors.WrapParse("yaml", "file.yaml", nil))
	})
}

func TestIOError(t *testing.T) {
	baseErr := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/tmp/output.json", baseErr)
	ioErr, ok := err.(*pkgerrors.IOError)
	require.True(t, ok)
	assert.Equal(t, "write", ioErr.Operation)
	assert.Contains(t, err.Error(), "/tmp/output.json")
	assert.Equal(t, baseErr, ioErr.Unwrap())

	assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))

	noPath := &pkgerrors.IOError{Operation: "read", Message: "closed"}
	assert.Equal(t, "IO error during read: closed", noPath.Error())
}

func TestWrapValidation(t *testing.T) {
	err := pkgerrors.WrapValidation("file", errors.New("unsupported extension .toml"))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "file")
	assert.True(t, pkgerrors.IsValidationError(err))

	assert.Nil(t, pkgerrors.WrapValidation("field", nil))
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", pkgerrors.ErrNotFound},
		{"ErrUnauthorized", pkgerrors.ErrUnauthorized},
		{"ErrRateLimited", pkgerrors.ErrRateLimited},
		{"ErrServiceUnavailable", pkgerrors.ErrServiceUnavailable},
		{"ErrInvalidInput", pkgerrors.ErrInvalidInput},
		{"ErrInvalidConfig", pkgerrors.ErrInvalidConfig},
	}

	for _, tc := range sentinels {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotNil(t, tc.err)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}
