package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astelhq/astel"
	astelslog "github.com/astelhq/astel/slog"
)

func TestEventLogger(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	mustParse := func(t *testing.T, raw string) astel.ParsedURL {
		t.Helper()
		u, err := astel.ParseURL(raw)
		require.NoError(t, err)
		return u
	}

	t.Run("request", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := astelslog.NewEventLogger(newLogger(&buf))

		l.Request(astel.RequestEvent{
			URL:       mustParse(t, "https://example.com/a"),
			UserAgent: "astel",
		})

		output := buf.String()
		assert.Contains(t, output, "request")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "user_agent=astel")
	})

	t.Run("response", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := astelslog.NewEventLogger(newLogger(&buf))

		l.Response(astel.ResponseEvent{
			URL:         mustParse(t, "https://example.com/a"),
			StatusCode:  200,
			Bytes:       1024,
			ContentHash: "deadbeefdeadbeef",
			Duration:    5 * time.Millisecond,
		})

		output := buf.String()
		assert.Contains(t, output, "response")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=1024")
		assert.Contains(t, output, "hash=deadbeefdeadbeef")
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := astelslog.NewEventLogger(newLogger(&buf))

		l.Error(astel.ErrorEvent{
			URL: mustParse(t, "https://example.com/broken"),
			Err: errors.New("HTTP 503 for https://example.com/broken"),
		})

		output := buf.String()
		assert.Contains(t, output, "crawl error")
		assert.Contains(t, output, "url=https://example.com/broken")
		assert.Contains(t, output, "HTTP 503")
	})
}
