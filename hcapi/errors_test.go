package hcapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindForStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, ErrorKindAuthentication},
		{http.StatusForbidden, ErrorKindPermission},
		{http.StatusNotFound, ErrorKindNotFound},
		{http.StatusUnprocessableEntity, ErrorKindValidation},
		{http.StatusTooManyRequests, ErrorKindRateLimited},
		{http.StatusInternalServerError, ErrorKindUnavailable},
		{http.StatusBadGateway, ErrorKindUnavailable},
		{http.StatusServiceUnavailable, ErrorKindUnavailable},
		{http.StatusConflict, ErrorKindAPI},
		{http.StatusBadRequest, ErrorKindAPI},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, kindForStatus(tt.status), "status %d", tt.status)
	}
}

func TestErrorFromResponse_APIEnvelope(t *testing.T) {
	t.Parallel()

	body := []byte(`{"error": {"code": "uniqueness_error", "message": "name is already used"}}`)
	err := errorFromResponse(http.StatusConflict, body)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorKindAPI, apiErr.Kind)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "uniqueness_error", apiErr.Code)
	assert.Equal(t, "name is already used", apiErr.Message)
}

func TestErrorFromResponse_ValidationFields(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"error": {
			"code": "invalid_input",
			"message": "invalid input in fields 'name', 'ttl'",
			"details": {
				"fields": [
					{"name": "name", "messages": ["must not be empty"]},
					{"name": "ttl", "messages": ["must be at least 60"]}
				]
			}
		}
	}`)
	err := errorFromResponse(http.StatusUnprocessableEntity, body)

	require.True(t, IsValidation(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Len(t, apiErr.Fields, 2)
	assert.Equal(t, "name", apiErr.Fields[0].Name)
	assert.Equal(t, []string{"must not be empty"}, apiErr.Fields[0].Messages)
	assert.Equal(t, "ttl", apiErr.Fields[1].Name)
}

func TestErrorFromResponse_NonJSONBody(t *testing.T) {
	t.Parallel()

	// A proxy returning HTML must still be classified by status code.
	err := errorFromResponse(http.StatusServiceUnavailable, []byte("<html>Bad Gateway</html>"))

	require.True(t, IsServerUnavailable(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), apiErr.Message)
	assert.Empty(t, apiErr.Code)
}

func TestMissingField(t *testing.T) {
	t.Parallel()

	err := missingField("server_type")

	require.True(t, IsValidation(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode, "client-side validation carries no HTTP status")
	assert.Equal(t, "invalid_input", apiErr.Code)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "server_type", apiErr.Fields[0].Name)
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	auth := errorFromResponse(http.StatusUnauthorized, nil)
	assert.True(t, IsAuthentication(auth))
	assert.False(t, IsPermissionDenied(auth))

	denied := errorFromResponse(http.StatusForbidden, nil)
	assert.True(t, IsPermissionDenied(denied))
	assert.False(t, IsAuthentication(denied))

	notFound := errorFromResponse(http.StatusNotFound, nil)
	assert.True(t, IsNotFound(notFound))

	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"rate limited", errorFromResponse(http.StatusTooManyRequests, nil), true},
		{"server error", errorFromResponse(http.StatusInternalServerError, nil), true},
		{"transport", transportError(http.MethodGet, "/servers", errors.New("connection refused")), true},
		{"not found", errorFromResponse(http.StatusNotFound, nil), false},
		{"validation", missingField("name"), false},
		{"authentication", errorFromResponse(http.StatusUnauthorized, nil), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	withCode := errorFromResponse(http.StatusConflict, []byte(`{"error": {"code": "locked", "message": "resource is locked"}}`))
	assert.Equal(t, "resource is locked (locked, status 409)", withCode.Error())

	transport := transportError(http.MethodGet, "/servers/1", errors.New("dial tcp: connection refused"))
	assert.Contains(t, transport.Error(), "transport failure")
	assert.Contains(t, transport.Error(), "GET /servers/1")
}

func TestError_WrappedThroughCallers(t *testing.T) {
	t.Parallel()

	// Predicates must see through wrapping applied by callers.
	inner := errorFromResponse(http.StatusNotFound, nil)
	wrapped := errors.Join(errors.New("looking up server"), inner)
	assert.True(t, IsNotFound(wrapped))
}
