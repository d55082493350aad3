package observability

import (
	"net/http"
	"time"
)

// NewHTTPClient returns a client for outbound collaborator calls. Every
// collaborator boundary carries a client-side timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	client := &http.Client{Transport: http.DefaultTransport}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return client
}
