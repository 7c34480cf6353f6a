package hcapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API or transport failure. Callers branch on the
// kind (through the Is* predicates) to decide between retry, backoff, and
// fail-fast.
type ErrorKind string

const (
	// ErrorKindAuthentication covers HTTP 401: missing or invalid token.
	ErrorKindAuthentication ErrorKind = "authentication"
	// ErrorKindPermission covers HTTP 403.
	ErrorKindPermission ErrorKind = "permission"
	// ErrorKindNotFound covers HTTP 404: the id or name does not resolve.
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindValidation covers HTTP 422 and client-side rejection of
	// requests with required fields missing. Carries per-field details.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindRateLimited covers HTTP 429. The client never retries on
	// its own; backoff is the caller's decision.
	ErrorKindRateLimited ErrorKind = "rate_limited"
	// ErrorKindUnavailable covers HTTP 5xx.
	ErrorKindUnavailable ErrorKind = "server_unavailable"
	// ErrorKindTransport covers network-level failures where no HTTP
	// response was received: DNS, connection refused, TLS, timeouts.
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindAPI covers any other 4xx response carrying an API error
	// body that does not map to a more specific kind.
	ErrorKindAPI ErrorKind = "api"
)

// FieldError describes a validation failure for a single request field.
type FieldError struct {
	Name     string   `json:"name"`
	Messages []string `json:"messages"`
}

// Error is the classified failure type returned by all client calls.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // 0 for transport failures and client-side validation
	Code       string // API error code, e.g. "invalid_input"
	Message    string
	Fields     []FieldError // populated for validation errors
	cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrorKindTransport:
		return fmt.Sprintf("transport failure: %s", e.Message)
	case e.Code != "":
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// wire format of API error bodies
type errorResponse struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type errorDetails struct {
	Fields []FieldError `json:"fields"`
}

// errorFromResponse classifies a non-2xx response. The body is decoded as
// an API error envelope when possible; responses without one still get a
// kind derived from the status code, so a dying proxy returning HTML is
// classified the same as a well-formed 503.
func errorFromResponse(statusCode int, body []byte) error {
	apiErr := &Error{
		Kind:       kindForStatus(statusCode),
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	var wire errorResponse
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error.Message != "" {
		apiErr.Code = wire.Error.Code
		apiErr.Message = wire.Error.Message
		if len(wire.Error.Details) > 0 {
			var details errorDetails
			if err := json.Unmarshal(wire.Error.Details, &details); err == nil {
				apiErr.Fields = details.Fields
			}
		}
	}
	return apiErr
}

func kindForStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusUnauthorized:
		return ErrorKindAuthentication
	case statusCode == http.StatusForbidden:
		return ErrorKindPermission
	case statusCode == http.StatusNotFound:
		return ErrorKindNotFound
	case statusCode == http.StatusUnprocessableEntity:
		return ErrorKindValidation
	case statusCode == http.StatusTooManyRequests:
		return ErrorKindRateLimited
	case statusCode >= 500:
		return ErrorKindUnavailable
	default:
		return ErrorKindAPI
	}
}

// transportError wraps a network-level failure. No HTTP response was
// received, which distinguishes it from every API-level kind.
func transportError(method, path string, cause error) error {
	return &Error{
		Kind:    ErrorKindTransport,
		Message: fmt.Sprintf("%s %s: %v", method, path, cause),
		cause:   cause,
	}
}

// missingField builds the client-side validation error used when a create
// call is issued without a required field. No request is sent in that case.
func missingField(name string) error {
	return &Error{
		Kind:    ErrorKindValidation,
		Code:    "invalid_input",
		Message: fmt.Sprintf("missing required field: %s", name),
		Fields:  []FieldError{{Name: name, Messages: []string{"is required"}}},
	}
}

func errorKindIs(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsAuthentication reports whether err is an authentication failure (401).
func IsAuthentication(err error) bool {
	return errorKindIs(err, ErrorKindAuthentication)
}

// IsPermissionDenied reports whether err is a permission failure (403).
func IsPermissionDenied(err error) bool {
	return errorKindIs(err, ErrorKindPermission)
}

// IsNotFound reports whether err indicates a resource was not found.
func IsNotFound(err error) bool {
	return errorKindIs(err, ErrorKindNotFound)
}

// IsValidation reports whether err is a validation failure. Field details
// are available on the *Error value via errors.As.
func IsValidation(err error) bool {
	return errorKindIs(err, ErrorKindValidation)
}

// IsRateLimited reports whether err indicates rate limiting (429).
func IsRateLimited(err error) bool {
	return errorKindIs(err, ErrorKindRateLimited)
}

// IsServerUnavailable reports whether err is a server-side failure (5xx).
func IsServerUnavailable(err error) bool {
	return errorKindIs(err, ErrorKindUnavailable)
}

// IsTransport reports whether err is a network-level failure without an
// HTTP response.
func IsTransport(err error) bool {
	return errorKindIs(err, ErrorKindTransport)
}

// IsRetryable reports whether err is worth retrying with backoff: rate
// limits, 5xx responses, and transport failures. Everything else is a
// permanent failure for the request as issued.
func IsRetryable(err error) bool {
	return IsRateLimited(err) || IsServerUnavailable(err) || IsTransport(err)
}
