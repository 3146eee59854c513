package crawl

import (
	"context"
	"time"

	"github.com/astelhq/astel"
)

// FetchFunc is the signature for a fetch attempt.
type FetchFunc func(ctx context.Context, url string) (*astel.FetchResult, error)

// DefaultRetryDelays returns the backoff schedule for opting in to fetch
// retries: 1s, 2s, 4s. The engine performs a single attempt per URL
// unless a schedule is configured.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays attempts a fetch with one retry per delay in the
// schedule, sleeping the corresponding delay between attempts. It returns
// the first success, the last error once the schedule is spent, or the
// context error if canceled while waiting.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration) (*astel.FetchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
