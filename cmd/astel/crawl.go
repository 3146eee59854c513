package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/astelhq/astel"
	"github.com/astelhq/astel/crawl"
	"github.com/astelhq/astel/goquery"
	astelslog "github.com/astelhq/astel/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seeds := c.Seeds
	if c.Sitemap {
		for _, seed := range c.Seeds {
			discovered, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, seed)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", astel.ErrorMessage(err))
				return err
			}
			seeds = append(seeds, discovered...)
		}
	}

	scope, err := scopeFor(c.Scope, c.Seeds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", astel.ErrorMessage(err))
		return err
	}

	var limiter astel.RateLimiter
	if c.RPS > 0 {
		limiter = crawl.NewTokenBucketLimiter(c.RPS)
	}

	crawler := &crawl.Crawler{
		Fetcher:   deps.Fetcher,
		Extractor: goquery.NewExtractor(),
		Scope:     scope,
		Limiter:   limiter,
		Logger:    deps.Logger,
		Workers:   c.Workers,
		Limit:     c.Limit,
		UserAgent: c.UserAgent,
	}
	if c.Retry {
		crawler.RetryDelays = crawl.DefaultRetryDelays()
	}

	events := astelslog.NewEventLogger(deps.Logger)
	crawler.OnRequest(events.Request)
	crawler.OnResponse(events.Response)
	crawler.OnError(events.Error)

	// Collect per-URL rows for the saved report.
	var mu sync.Mutex
	rows := map[string]astel.CrawlURL{}
	crawler.OnResponse(func(ev astel.ResponseEvent) {
		mu.Lock()
		rows[ev.URL.Key()] = astel.CrawlURL{
			URL:         ev.URL.String(),
			StatusCode:  ev.StatusCode,
			ContentHash: ev.ContentHash,
		}
		mu.Unlock()
	})
	crawler.OnError(func(ev astel.ErrorEvent) {
		if ev.URL.IsZero() {
			return
		}
		mu.Lock()
		// A fetched page can still emit errors for its malformed
		// links; keep the response row in that case.
		if _, ok := rows[ev.URL.Key()]; !ok {
			rows[ev.URL.Key()] = astel.CrawlURL{
				URL:   ev.URL.String(),
				Error: ev.Err.Error(),
			}
		}
		mu.Unlock()
	})

	started := time.Now().UTC()
	result, err := crawler.Run(deps.Ctx, seeds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", astel.ErrorMessage(err))
		return err
	}

	for _, u := range result.Seen {
		fmt.Fprintln(deps.Stdout, u.String())
	}
	fmt.Fprintf(deps.Stdout, "%d crawled, %d failed, %d seen (%s in %s)\n",
		result.Crawled, result.Failed, len(result.Seen),
		result.Outcome, result.Duration.Round(time.Millisecond))

	if c.Save {
		record := &astel.CrawlRecord{
			Seeds:     c.Seeds,
			Outcome:   result.Outcome.String(),
			SeenCount: len(result.Seen),
			Crawled:   result.Crawled,
			Failed:    result.Failed,
			StartedAt: started,
			Duration:  result.Duration,
		}

		mu.Lock()
		for _, u := range result.Seen {
			row, ok := rows[u.Key()]
			if !ok {
				// Admitted but never fetched before the crawl stopped.
				row = astel.CrawlURL{URL: u.String()}
			}
			record.URLs = append(record.URLs, row)
		}
		mu.Unlock()

		if err := deps.Crawls.SaveCrawl(deps.Ctx, record); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", astel.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved crawl %s\n", record.ID)
	}

	return nil
}

// scopeFor builds the admission scope from the CLI flag. A nil scope
// lets the engine default to the seeds' registered domains.
func scopeFor(name string, seeds []string) (astel.ScopeFunc, error) {
	switch name {
	case "all":
		return astel.AllScope, nil
	case "host":
		var parsed []astel.ParsedURL
		for _, seed := range seeds {
			u, err := astel.ParseURL(seed)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, u)
		}
		return astel.HostScope(parsed...), nil
	default:
		return nil, nil
	}
}
