package astel

import "time"

// RequestEvent is emitted just before a worker fetches a URL.
type RequestEvent struct {
	URL       ParsedURL
	UserAgent string
}

// ResponseEvent is emitted after a successful fetch.
type ResponseEvent struct {
	URL        ParsedURL
	StatusCode int
	Bytes      int

	// ContentHash is an xxhash fingerprint of the response body,
	// useful for spotting duplicate content served under distinct URLs.
	ContentHash string

	Duration time.Duration
}

// ErrorEvent is emitted when a URL fails: a fetch error, a non-2xx
// status, unparsable page content, or a malformed link dropped before
// admission. Per-URL failures are observable here but never terminate
// the crawl.
type ErrorEvent struct {
	URL      ParsedURL
	Err      error
	Duration time.Duration
}

// Handler funcs for crawl lifecycle events. Handlers are registered on
// the engine before Run and dispatched synchronously from the worker
// that triggered the event, but a panicking handler is recovered and
// reported rather than allowed to abort the worker: observability must
// not be able to break crawling.
type (
	RequestHandler  func(RequestEvent)
	ResponseHandler func(ResponseEvent)
	ErrorHandler    func(ErrorEvent)
)
