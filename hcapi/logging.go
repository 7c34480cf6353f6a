package hcapi

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

// loggingTransport logs one line per request at V(1). The Authorization
// header is never part of the logged fields.
type loggingTransport struct {
	next   http.RoundTripper
	logger logr.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.V(1).Info("request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start),
			"error", err.Error(),
		)
		return resp, err
	}
	t.logger.V(1).Info("request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, err
}
