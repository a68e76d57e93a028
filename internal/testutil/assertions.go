package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertUpgradeRequired verifies a 403 upgrade prompt with the expected error code
func AssertUpgradeRequired(t *testing.T, resp *http.Response, expectedCode string) {
	t.Helper()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "unexpected status code")

	var payload struct {
		Error      string `json:"error"`
		Message    string `json:"message"`
		UpgradeURL string `json:"upgradeUrl"`
	}
	AssertJSONResponse(t, resp, &payload)
	assert.Equal(t, expectedCode, payload.Error, "unexpected upgrade error code")
	assert.Equal(t, "/settings/billing", payload.UpgradeURL, "unexpected upgrade URL")
	assert.NotEmpty(t, payload.Message, "upgrade message should not be empty")
}

// AssertSessionCookie finds the session cookie on a response and verifies its
// security attributes
func AssertSessionCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			assert.True(t, cookie.HttpOnly, "session cookie must be HttpOnly")
			assert.Equal(t, "/", cookie.Path, "session cookie path mismatch")
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite, "session cookie SameSite mismatch")
			return cookie
		}
	}

	t.Fatalf("cookie %q not set on response", name)
	return nil
}
