package astel

import (
	"context"
	"time"
)

// CrawlRecord is the persisted report of one finished crawl. It records
// outcomes, not restartable state: a saved crawl cannot be resumed.
type CrawlRecord struct {
	ID        string        `json:"id"`
	Seeds     []string      `json:"seeds"`
	Outcome   string        `json:"outcome"`
	SeenCount int           `json:"seenCount"`
	Crawled   int           `json:"crawled"`
	Failed    int           `json:"failed"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`

	// URLs holds the per-URL rows of the seen set. May be empty on
	// records returned by listing queries.
	URLs []CrawlURL `json:"urls,omitempty"`
}

// CrawlURL is one row of a crawl report's seen set.
type CrawlURL struct {
	URL         string `json:"url"`
	StatusCode  int    `json:"statusCode,omitempty"`
	ContentHash string `json:"contentHash,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (r *CrawlRecord) Validate() error {
	if len(r.Seeds) == 0 {
		return Errorf(EINVALID, "crawl record seeds required")
	}
	if r.Outcome == "" {
		return Errorf(EINVALID, "crawl record outcome required")
	}
	return nil
}

// CrawlStore persists crawl reports.
type CrawlStore interface {
	// SaveCrawl stores a finished crawl report. Assigns an ID if the
	// record has none.
	SaveCrawl(ctx context.Context, record *CrawlRecord) error

	// FindCrawls lists saved reports, most recent first, without
	// per-URL rows.
	FindCrawls(ctx context.Context) ([]*CrawlRecord, error)

	// FindCrawlByID retrieves one report with its per-URL rows.
	// Returns ENOTFOUND if no such record exists.
	FindCrawlByID(ctx context.Context, id string) (*CrawlRecord, error)
}
