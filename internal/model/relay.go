// Package model defines transient types passed between client, service and handler.
package model

import (
	"io"
	"net/http"
)

// UpstreamResponse is the raw result of one outbound call.
// The receiver owns Body and must close it.
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// RelayResult is what GET /api reports back to the client.
// Payload is non-nil only when StatusCode is 200, and then holds a decoded
// JSON object (map[string]any) or array ([]any) whose schema is opaque to
// the relay.
type RelayResult struct {
	StatusCode int
	Payload    any
}

// OK reports whether the upstream answered with 200.
func (r *RelayResult) OK() bool {
	return r.StatusCode == http.StatusOK
}
