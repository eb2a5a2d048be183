package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response envelope for decoding in tests
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeEnvelope reads and decodes the response envelope
func DecodeEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope Envelope
	err = json.Unmarshal(body, &envelope)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
	return envelope
}

// DecodeData decodes the envelope's data object into v
func DecodeData(t *testing.T, envelope Envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(envelope.Data, v), "failed to unmarshal data: %s", string(envelope.Data))
}

// AssertErrorResponse verifies an error envelope with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	envelope := DecodeEnvelope(t, resp)
	assert.False(t, envelope.Success)
	assert.Equal(t, expectedMessage, envelope.Message, "error message mismatch")
}
