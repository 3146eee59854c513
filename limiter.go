package astel

import "context"

// RateLimiter paces the crawl as a whole. Implementations bound the
// aggregate request rate across all workers, not per remote host.
type RateLimiter interface {
	// Wait blocks until the limiter allows the next request.
	// Returns an error only if the context is canceled first.
	Wait(ctx context.Context) error
}
