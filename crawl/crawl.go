// Package crawl implements the crawl engine: the URL frontier, the
// bounded worker pool that drains it, the termination policy, and the
// event notification points that let callers observe the fetch
// lifecycle without being wired into the fetch path.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/astelhq/astel"
)

// Defaults applied by Run when the corresponding field is zero.
const (
	DefaultWorkers   = 5
	DefaultLimit     = 20
	DefaultUserAgent = "astel"

	// defaultPollInterval is how long an idle worker yields before
	// re-checking an apparently empty frontier.
	defaultPollInterval = 10 * time.Millisecond
)

// Crawler states. A crawler runs exactly once; re-crawling requires a
// fresh instance.
const (
	stateIdle int32 = iota
	stateRunning
	stateDone
)

// Outcome explains why a crawl stopped.
type Outcome int

const (
	// OutcomeExhausted means the frontier drained without the limit
	// ever refusing an admission.
	OutcomeExhausted Outcome = iota

	// OutcomeLimit means the admission ceiling cut the crawl short.
	OutcomeLimit

	// OutcomeCanceled means the caller's context was canceled.
	OutcomeCanceled
)

// String returns a short lowercase label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeLimit:
		return "limit"
	case OutcomeCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the final snapshot of a crawl: every URL ever admitted to
// the frontier (visited or cut off by cancellation), with counts and the
// stop reason.
type Result struct {
	Seen     []astel.ParsedURL
	Crawled  int
	Failed   int
	Outcome  Outcome
	Duration time.Duration
}

// Crawler orchestrates a breadth-first crawl. Configure the exported
// fields and register event handlers before calling Run; the zero value
// of each optional field selects a sensible default.
type Crawler struct {
	// Fetcher retrieves pages. Required.
	Fetcher astel.Fetcher

	// Extractor harvests outbound links from fetched pages. Required.
	Extractor astel.LinkExtractor

	// Scope decides which discovered URLs may be admitted. Defaults to
	// the registered domains of the seeds.
	Scope astel.ScopeFunc

	// Limiter paces fetches across all workers. Defaults to NoLimit.
	Limiter astel.RateLimiter

	// Logger receives engine diagnostics. Defaults to a discard logger.
	Logger *slog.Logger

	// Workers is the number of concurrent workers. Zero means
	// DefaultWorkers; negative is a configuration error.
	Workers int

	// Limit caps the number of URLs ever admitted to the frontier.
	// Zero means DefaultLimit; negative is a configuration error.
	Limit int

	// UserAgent identifies the crawler in request events. Defaults to
	// DefaultUserAgent. Fetcher implementations carry their own copy
	// for the actual header.
	UserAgent string

	// RetryDelays enables per-URL fetch retries with the given backoff
	// schedule. Nil or empty means a single attempt per URL.
	RetryDelays []time.Duration

	// PollInterval is how long an idle worker yields before rechecking
	// the frontier. Zero means a small default.
	PollInterval time.Duration

	state    atomic.Int32
	notifier *Notifier
	crawled  atomic.Int64
	failed   atomic.Int64
	result   *Result
}

// OnRequest registers a handler for request-start events.
// Call before Run; registration is not synchronized with running workers.
func (c *Crawler) OnRequest(h astel.RequestHandler) {
	c.events().OnRequest(h)
}

// OnResponse registers a handler for successful-response events.
func (c *Crawler) OnResponse(h astel.ResponseHandler) {
	c.events().OnResponse(h)
}

// OnError registers a handler for per-URL failure events.
func (c *Crawler) OnError(h astel.ErrorHandler) {
	c.events().OnError(h)
}

func (c *Crawler) events() *Notifier {
	if c.notifier == nil {
		c.notifier = NewNotifier(c.logger())
	}
	return c.notifier
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Result returns the final snapshot once the crawl is done, nil before.
func (c *Crawler) Result() *Result {
	if c.state.Load() != stateDone {
		return nil
	}
	return c.result
}

// Run executes the crawl to completion or cancellation and returns the
// final snapshot. Misconfiguration fails with EINVALID before any worker
// starts; per-URL failures during the crawl are reported through the
// error hook and never surface here. A second Run on the same instance
// fails with ECONFLICT.
func (c *Crawler) Run(ctx context.Context, seeds []string) (*Result, error) {
	if !c.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil, astel.Errorf(astel.ECONFLICT, "crawler has already run; create a new instance to crawl again")
	}
	defer c.state.Store(stateDone)

	workers := c.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	limit := c.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	switch {
	case c.Fetcher == nil:
		return nil, astel.Errorf(astel.EINVALID, "fetcher required")
	case c.Extractor == nil:
		return nil, astel.Errorf(astel.EINVALID, "link extractor required")
	case workers < 0:
		return nil, astel.Errorf(astel.EINVALID, "worker count must be positive, got %d", c.Workers)
	case limit < 0:
		return nil, astel.Errorf(astel.EINVALID, "crawl limit must be positive, got %d", c.Limit)
	case len(seeds) == 0:
		return nil, astel.Errorf(astel.EINVALID, "at least one seed URL required")
	}

	logger := c.logger()
	notifier := c.events()

	// Admit seeds. Malformed seeds are dropped through the error hook;
	// only an entirely unusable seed set is fatal.
	frontier := NewFrontier(limit)
	var seedURLs []astel.ParsedURL
	for _, raw := range seeds {
		u, err := astel.ParseURL(raw)
		if err != nil {
			logger.Warn("dropping malformed seed", "url", raw, "err", err)
			notifier.EmitError(astel.ErrorEvent{Err: err})
			continue
		}
		seedURLs = append(seedURLs, u)
		frontier.TryAdmit(u)
	}
	if frontier.SeenCount() == 0 {
		return nil, astel.Errorf(astel.EINVALID, "no valid seed URLs")
	}

	scope := c.Scope
	if scope == nil {
		scope = astel.DomainScope(seedURLs...)
	}
	limiter := c.Limiter
	if limiter == nil {
		limiter = NoLimit
	}
	poll := c.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	start := time.Now()
	logger.Info("crawl started",
		"seeds", len(seedURLs),
		"workers", workers,
		"limit", limit,
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		id := i
		g.Go(func() error {
			c.worker(gctx, id, frontier, scope, limiter, notifier, userAgent, poll)
			return nil
		})
	}
	_ = g.Wait()

	outcome := OutcomeExhausted
	switch {
	case ctx.Err() != nil:
		outcome = OutcomeCanceled
	case frontier.LimitReached():
		outcome = OutcomeLimit
	}

	c.result = &Result{
		Seen:     frontier.Seen(),
		Crawled:  int(c.crawled.Load()),
		Failed:   int(c.failed.Load()),
		Outcome:  outcome,
		Duration: time.Since(start),
	}

	logger.Info("crawl finished",
		"outcome", outcome.String(),
		"seen", len(c.result.Seen),
		"crawled", c.result.Crawled,
		"failed", c.result.Failed,
		"duration", c.result.Duration,
	)
	return c.result, nil
}

// worker runs the claim/fetch/extract/admit loop until the frontier is
// exhausted or the context is canceled. An empty queue is not a reason
// to exit while siblings still hold claims: their pages may yield links.
func (c *Crawler) worker(ctx context.Context, id int, frontier *Frontier, scope astel.ScopeFunc, limiter astel.RateLimiter, notifier *Notifier, userAgent string, poll time.Duration) {
	logger := c.logger().With("worker", id)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		u, ok := frontier.Claim()
		if !ok {
			if frontier.Exhausted() {
				logger.Debug("frontier exhausted")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(poll):
			}
			continue
		}

		c.process(ctx, logger, frontier, scope, limiter, notifier, userAgent, u)
		frontier.Release()
	}
}

// process handles one claimed URL. All failures are local: reported via
// the error hook and counted, never propagated.
func (c *Crawler) process(ctx context.Context, logger *slog.Logger, frontier *Frontier, scope astel.ScopeFunc, limiter astel.RateLimiter, notifier *Notifier, userAgent string, u astel.ParsedURL) {
	notifier.EmitRequest(astel.RequestEvent{URL: u, UserAgent: userAgent})

	if err := limiter.Wait(ctx); err != nil {
		// Context canceled while pacing; the claim is released by the
		// caller and the worker exits on the next loop iteration.
		return
	}

	begin := time.Now()
	res, err := c.fetch(ctx, u.String())
	if err != nil {
		c.failed.Add(1)
		logger.Debug("fetch failed", "url", u.String(), "err", err)
		notifier.EmitError(astel.ErrorEvent{URL: u, Err: err, Duration: time.Since(begin)})
		return
	}

	c.crawled.Add(1)
	notifier.EmitResponse(astel.ResponseEvent{
		URL:         u,
		StatusCode:  res.StatusCode,
		Bytes:       len(res.Body),
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64(res.Body)),
		Duration:    time.Since(begin),
	})

	links, err := c.Extractor.ExtractLinks(string(res.Body), res.URL)
	if err != nil {
		c.failed.Add(1)
		logger.Debug("extraction failed", "url", u.String(), "err", err)
		notifier.EmitError(astel.ErrorEvent{URL: u, Err: err, Duration: time.Since(begin)})
		return
	}

	for _, link := range links {
		candidate, err := astel.ParseURL(link)
		if err != nil {
			logger.Debug("dropping malformed link", "url", link, "page", u.String())
			notifier.EmitError(astel.ErrorEvent{URL: u, Err: err})
			continue
		}
		if !scope(candidate) {
			continue
		}
		frontier.TryAdmit(candidate)
	}
}

// fetch performs a single attempt unless retry delays are configured.
func (c *Crawler) fetch(ctx context.Context, url string) (*astel.FetchResult, error) {
	if len(c.RetryDelays) == 0 {
		return c.Fetcher.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, c.RetryDelays)
}
