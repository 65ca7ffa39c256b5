package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/tmapi/pkg/constants"
	"github.com/agentstation/tmapi/pkg/errors"
)

// RequestBuilder builds unit endpoint URLs under a base URL.
type RequestBuilder struct {
	baseURL string
}

// NewRequestBuilder creates a builder. Trailing slashes on baseURL are dropped
// so "https://host/api/" and "https://host/api" resolve identically.
func NewRequestBuilder(baseURL string) *RequestBuilder {
	return &RequestBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the normalized base URL.
func (rb *RequestBuilder) BaseURL() string {
	return rb.baseURL
}

// UnitsURL returns the collection URL, with q set only for a non-empty query.
func (rb *RequestBuilder) UnitsURL(query string) string {
	u := rb.baseURL + "/" + constants.UnitsPath + "/"
	if query == "" {
		return u
	}
	return u + "?" + url.Values{"q": []string{query}}.Encode()
}

// UnitURL returns the URL of a single unit.
func (rb *RequestBuilder) UnitURL(id string) string {
	return rb.baseURL + "/" + constants.UnitsPath + "/" + url.PathEscape(id) + "/"
}

// DecodeResponse normalizes a response and always closes its body:
//   - 200, 201: the body decoded as a JSON object
//   - 204: {"message": "Deleted successfully"}, body ignored
//   - anything else: *errors.APIError with the raw body
func DecodeResponse(resp *http.Response) (map[string]any, error) {
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var result map[string]any
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, errors.WrapParse("json", "response", err)
		}
		if result == nil {
			return nil, errors.NewParseError("json", "response", "body is not a JSON object", nil)
		}
		return result, nil
	case http.StatusNoContent:
		return map[string]any{"message": constants.DeletedMessage}, nil
	default:
		method, endpoint := "", ""
		if resp.Request != nil {
			method = resp.Request.Method
			if resp.Request.URL != nil {
				endpoint = resp.Request.URL.String()
			}
		}
		return nil, errors.NewAPIError(method, endpoint, resp.StatusCode, body)
	}
}
