package astel

import (
	"context"
	"net/http"
)

// FetchResult holds a successful page fetch.
type FetchResult struct {
	// URL is the final URL after any redirects.
	URL string

	// StatusCode is the HTTP status code of the final response.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Body is the raw response body, possibly truncated to the
	// fetcher's body size cap.
	Body []byte
}

// Fetcher retrieves pages from URLs. A fetch that fails at the network
// level, times out, or yields a non-2xx status returns an error; the
// engine recovers such failures per URL and never retries automatically
// unless configured to.
type Fetcher interface {
	// Fetch retrieves the page at the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
