// Package mock provides mock implementations of astel interfaces for
// testing. Each mock exposes Fn fields that tests assign per-case.
package mock

import (
	"context"

	"github.com/astelhq/astel"
)

var _ astel.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of astel.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*astel.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*astel.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
