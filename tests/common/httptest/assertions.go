//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail map[string]any `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "response: %s", w.Body.String()) {
		return
	}
	if w.Code < 300 && targetStruct != nil {
		assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "decode: %s", w.Body.String())
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "response: %s", w.Body.String())

	var body errorBody
	assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "decode: %s", w.Body.String())
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg)
	}
}

// AssertCodedError checks a machine-readable error code and returns the
// detail object so callers can inspect e.g. the blocking attempt.
func AssertCodedError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, code string) map[string]any {
	t.Helper()

	require.Equalf(t, expectedStatus, w.Code, "response: %s", w.Body.String())

	var body errorBody
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "decode: %s", w.Body.String())
	require.Equal(t, code, body.Error.Code)
	return body.Detail
}

// AssertRedirect checks a callback bounced the browser to the storefront.
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder) *url.URL {
	t.Helper()

	require.Equalf(t, http.StatusFound, w.Code, "response: %s", w.Body.String())
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return loc
}
