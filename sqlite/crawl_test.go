package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astelhq/astel"
	"github.com/astelhq/astel/sqlite"
)

// mustOpenDB opens an in-memory database for a test and closes it on cleanup.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func testRecord() *astel.CrawlRecord {
	return &astel.CrawlRecord{
		Seeds:     []string{"https://example.com/"},
		Outcome:   "exhausted",
		SeenCount: 3,
		Crawled:   2,
		Failed:    1,
		StartedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		URLs: []astel.CrawlURL{
			{URL: "https://example.com/", StatusCode: 200, ContentHash: "aaaa"},
			{URL: "https://example.com/about", StatusCode: 200, ContentHash: "bbbb"},
			{URL: "https://example.com/broken", Error: "HTTP 404 for https://example.com/broken"},
		},
	}
}

func TestCrawlStore_SaveCrawl(t *testing.T) {
	t.Parallel()

	t.Run("assigns an ID and round-trips the record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewCrawlStore(db)
		ctx := context.Background()

		record := testRecord()
		require.NoError(t, store.SaveCrawl(ctx, record))
		require.NotEmpty(t, record.ID)

		got, err := store.FindCrawlByID(ctx, record.ID)
		require.NoError(t, err)

		assert.Equal(t, record.Seeds, got.Seeds)
		assert.Equal(t, "exhausted", got.Outcome)
		assert.Equal(t, 3, got.SeenCount)
		assert.Equal(t, 2, got.Crawled)
		assert.Equal(t, 1, got.Failed)
		assert.Equal(t, record.StartedAt, got.StartedAt)
		assert.Equal(t, record.Duration, got.Duration)
		assert.Equal(t, record.URLs, got.URLs)
	})

	t.Run("keeps an explicit ID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewCrawlStore(db)
		ctx := context.Background()

		record := testRecord()
		record.ID = "crawl-1"
		require.NoError(t, store.SaveCrawl(ctx, record))
		assert.Equal(t, "crawl-1", record.ID)
	})

	t.Run("rejects an invalid record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewCrawlStore(db)

		err := store.SaveCrawl(context.Background(), &astel.CrawlRecord{Outcome: "exhausted"})
		require.Error(t, err)
		assert.Equal(t, astel.EINVALID, astel.ErrorCode(err))
	})
}

func TestCrawlStore_FindCrawls(t *testing.T) {
	t.Parallel()

	t.Run("lists most recent first without per-URL rows", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewCrawlStore(db)
		ctx := context.Background()

		older := testRecord()
		older.StartedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, store.SaveCrawl(ctx, older))

		newer := testRecord()
		newer.StartedAt = time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
		require.NoError(t, store.SaveCrawl(ctx, newer))

		records, err := store.FindCrawls(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, newer.ID, records[0].ID)
		assert.Equal(t, older.ID, records[1].ID)
		assert.Empty(t, records[0].URLs)
	})

	t.Run("empty store yields no records", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewCrawlStore(db)

		records, err := store.FindCrawls(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestCrawlStore_FindCrawlByID(t *testing.T) {
	t.Parallel()

	t.Run("unknown ID returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		store := sqlite.NewCrawlStore(db)

		_, err := store.FindCrawlByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, astel.ENOTFOUND, astel.ErrorCode(err))
	})
}
