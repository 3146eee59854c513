package crawl

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/astelhq/astel"
)

var _ astel.RateLimiter = (*TokenBucketLimiter)(nil)

// TokenBucketLimiter bounds the aggregate request rate of the whole
// crawl using a token bucket. All workers share one bucket, so the
// number of requests per second stays at rps regardless of concurrency.
type TokenBucketLimiter struct {
	limiter *rate.Limiter
}

// NewTokenBucketLimiter creates a limiter allowing rps requests per
// second with a burst of 1 (no bursting).
func NewTokenBucketLimiter(rps float64) *TokenBucketLimiter {
	return &TokenBucketLimiter{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until the next request is allowed or the context is
// canceled.
func (l *TokenBucketLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// NoLimit is a RateLimiter that never waits.
var NoLimit astel.RateLimiter = noLimit{}

type noLimit struct{}

func (noLimit) Wait(context.Context) error { return nil }
