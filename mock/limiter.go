package mock

import (
	"context"

	"github.com/astelhq/astel"
)

var _ astel.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of astel.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
