package slog

import (
	"log/slog"

	"github.com/astelhq/astel"
)

// EventLogger translates crawl lifecycle events into structured log
// records. Register its handlers on a crawler's hooks to get a running
// account of every request, response and failure.
type EventLogger struct {
	logger *slog.Logger
}

// NewEventLogger creates a new EventLogger.
func NewEventLogger(logger *slog.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Request logs a RequestEvent at debug level.
func (l *EventLogger) Request(ev astel.RequestEvent) {
	l.logger.Debug("request",
		"url", ev.URL.String(),
		"user_agent", ev.UserAgent,
	)
}

// Response logs a ResponseEvent.
func (l *EventLogger) Response(ev astel.ResponseEvent) {
	l.logger.Info("response",
		"url", ev.URL.String(),
		"status", ev.StatusCode,
		"bytes", ev.Bytes,
		"hash", ev.ContentHash,
		"duration", ev.Duration,
	)
}

// Error logs an ErrorEvent.
func (l *EventLogger) Error(ev astel.ErrorEvent) {
	l.logger.Error("crawl error",
		"url", ev.URL.String(),
		"duration", ev.Duration,
		"err", ev.Err,
	)
}
