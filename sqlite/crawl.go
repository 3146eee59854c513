package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/astelhq/astel"
)

// Compile-time interface verification.
var _ astel.CrawlStore = (*CrawlStore)(nil)

// CrawlStore implements astel.CrawlStore using SQLite.
type CrawlStore struct {
	db *DB
}

// NewCrawlStore creates a new CrawlStore.
func NewCrawlStore(db *DB) *CrawlStore {
	return &CrawlStore{db: db}
}

// SaveCrawl stores a finished crawl report and its per-URL rows in one
// transaction. Assigns a fresh ID when the record has none.
func (s *CrawlStore) SaveCrawl(ctx context.Context, record *astel.CrawlRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.StartedAt.IsZero() {
		record.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO crawls (id, seeds, outcome, seen_count, crawled, failed, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, strings.Join(record.Seeds, "\n"), record.Outcome,
		record.SeenCount, record.Crawled, record.Failed,
		record.StartedAt.Format(time.RFC3339), record.Duration.Milliseconds())
	if err != nil {
		return err
	}

	for i, u := range record.URLs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO crawl_urls (crawl_id, url, status_code, content_hash, error, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, record.ID, u.URL, u.StatusCode, u.ContentHash, u.Error, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindCrawls retrieves saved crawl reports, most recent first, without
// their per-URL rows.
func (s *CrawlStore) FindCrawls(ctx context.Context) ([]*astel.CrawlRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seeds, outcome, seen_count, crawled, failed, started_at, duration_ms
		FROM crawls
		ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*astel.CrawlRecord
	for rows.Next() {
		record, err := scanCrawl(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// FindCrawlByID retrieves one crawl report with its per-URL rows.
func (s *CrawlStore) FindCrawlByID(ctx context.Context, id string) (*astel.CrawlRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seeds, outcome, seen_count, crawled, failed, started_at, duration_ms
		FROM crawls
		WHERE id = ?
	`, id)

	record, err := scanCrawl(row.Scan)
	if err == sql.ErrNoRows {
		return nil, astel.Errorf(astel.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, status_code, content_hash, error
		FROM crawl_urls
		WHERE crawl_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u astel.CrawlURL
		if err := rows.Scan(&u.URL, &u.StatusCode, &u.ContentHash, &u.Error); err != nil {
			return nil, err
		}
		record.URLs = append(record.URLs, u)
	}
	return record, rows.Err()
}

// scanCrawl reads one crawls row via the given Scan func.
func scanCrawl(scan func(dest ...any) error) (*astel.CrawlRecord, error) {
	var record astel.CrawlRecord
	var seeds, startedAt string
	var durationMS int64

	if err := scan(&record.ID, &seeds, &record.Outcome,
		&record.SeenCount, &record.Crawled, &record.Failed,
		&startedAt, &durationMS); err != nil {
		return nil, err
	}

	record.Seeds = strings.Split(seeds, "\n")
	record.Duration = time.Duration(durationMS) * time.Millisecond

	var err error
	record.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	return &record, nil
}
