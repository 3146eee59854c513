package mock

import (
	"context"

	"github.com/astelhq/astel"
)

var _ astel.CrawlStore = (*CrawlStore)(nil)

// CrawlStore is a mock implementation of astel.CrawlStore.
type CrawlStore struct {
	SaveCrawlFn     func(ctx context.Context, record *astel.CrawlRecord) error
	FindCrawlsFn    func(ctx context.Context) ([]*astel.CrawlRecord, error)
	FindCrawlByIDFn func(ctx context.Context, id string) (*astel.CrawlRecord, error)
}

func (s *CrawlStore) SaveCrawl(ctx context.Context, record *astel.CrawlRecord) error {
	return s.SaveCrawlFn(ctx, record)
}

func (s *CrawlStore) FindCrawls(ctx context.Context) ([]*astel.CrawlRecord, error) {
	return s.FindCrawlsFn(ctx)
}

func (s *CrawlStore) FindCrawlByID(ctx context.Context, id string) (*astel.CrawlRecord, error) {
	return s.FindCrawlByIDFn(ctx, id)
}
