package transport

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/tmapi/pkg/errors"
)

func TestRequestBuilder(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		query   string
		id      string
		units   string
		unit    string
	}{
		{
			name:    "trailing slash",
			baseURL: "https://host/api/",
			id:      "42",
			units:   "https://host/api/units/",
			unit:    "https://host/api/units/42/",
		},
		{
			name:    "no trailing slash",
			baseURL: "https://host/api",
			id:      "42",
			units:   "https://host/api/units/",
			unit:    "https://host/api/units/42/",
		},
		{
			name:    "query is encoded",
			baseURL: "https://hosted.weblate.org/api/",
			query:   "boards.movingImagesToBoard & more",
			id:      "a/b",
			units:   "https://hosted.weblate.org/api/units/?q=boards.movingImagesToBoard+%26+more",
			unit:    "https://hosted.weblate.org/api/units/a%2Fb/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewRequestBuilder(tt.baseURL)
			assert.Equal(t, tt.units, rb.UnitsURL(tt.query))
			assert.Equal(t, tt.unit, rb.UnitURL(tt.id))
			assert.False(t, strings.HasSuffix(rb.BaseURL(), "/"))
		})
	}
}

func TestUnitsURLWithoutQueryHasNoRawQuery(t *testing.T) {
	u, err := url.Parse(NewRequestBuilder("https://host/api").UnitsURL(""))
	require.NoError(t, err)
	assert.Empty(t, u.RawQuery)
}

func response(status int, body string) *http.Response {
	req, _ := http.NewRequest(http.MethodPatch, "https://host/api/units/42/", nil)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func TestDecodeResponse(t *testing.T) {
	t.Run("200 decodes object", func(t *testing.T) {
		got, err := DecodeResponse(response(http.StatusOK, `{"id":42,"target":"hola"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": float64(42), "target": "hola"}, got)
	})

	t.Run("201 decodes object", func(t *testing.T) {
		got, err := DecodeResponse(response(http.StatusCreated, `{"id":1}`))
		require.NoError(t, err)
		assert.Equal(t, float64(1), got["id"])
	})

	t.Run("204 ignores body", func(t *testing.T) {
		got, err := DecodeResponse(response(http.StatusNoContent, `garbage`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"message": "Deleted successfully"}, got)
	})

	t.Run("non-success carries status and body", func(t *testing.T) {
		for _, status := range []int{http.StatusAccepted, http.StatusMovedPermanently, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
			_, err := DecodeResponse(response(status, `{"detail":"nope"}`))
			require.Error(t, err)

			var apiErr *pkgerrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, status, apiErr.StatusCode)
			assert.Equal(t, []byte(`{"detail":"nope"}`), apiErr.Body)
			assert.Equal(t, http.MethodPatch, apiErr.Method)
			assert.Equal(t, "https://host/api/units/42/", apiErr.Endpoint)
		}
	})

	t.Run("empty 200 body is a parse error", func(t *testing.T) {
		_, err := DecodeResponse(response(http.StatusOK, ``))
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "json", parseErr.Format)
	})

	t.Run("null and arrays are parse errors", func(t *testing.T) {
		for _, body := range []string{`null`, `[1,2]`, `{"id":`} {
			_, err := DecodeResponse(response(http.StatusOK, body))
			var parseErr *pkgerrors.ParseError
			assert.True(t, errors.As(err, &parseErr), body)
		}
	})

	t.Run("missing request still builds error", func(t *testing.T) {
		resp := &http.Response{StatusCode: 418, Body: io.NopCloser(strings.NewReader(""))}
		_, err := DecodeResponse(resp)
		code, ok := pkgerrors.StatusCode(err)
		require.True(t, ok)
		assert.Equal(t, 418, code)
	})
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestDecodeResponseClosesBody(t *testing.T) {
	for _, status := range []int{200, 204, 500} {
		body := &closeTracker{Reader: strings.NewReader(`{}`)}
		_, _ = DecodeResponse(&http.Response{StatusCode: status, Body: body})
		assert.True(t, body.closed, "status %d", status)
	}
}
