// Package slog provides logging decorators and event observers built on
// the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/astelhq/astel"
)

// Ensure LoggingFetcher implements astel.Fetcher.
var _ astel.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-fetch logging.
type LoggingFetcher struct {
	next   astel.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next astel.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *astel.FetchResult, err error) {
	defer func(begin time.Time) {
		status, bytes := 0, 0
		if res != nil {
			status = res.StatusCode
			bytes = len(res.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
