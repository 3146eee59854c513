package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/astelhq/astel"
	"github.com/astelhq/astel/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Crawls   astel.CrawlStore
	Sitemaps astel.SitemapService
	Fetcher  astel.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl a site breadth-first from seed URLs"`
	Runs  RunsCmd  `cmd:"" help:"List saved crawl reports"`
	Show  ShowCmd  `cmd:"" help:"Show one saved crawl report with its URLs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds     []string      `arg:"" help:"Seed URLs to start from"`
	Workers   int           `short:"w" default:"5" help:"Concurrent worker count"`
	Limit     int           `short:"l" default:"20" help:"Maximum URLs admitted to the frontier"`
	UserAgent string        `default:"astel" help:"User-Agent header value"`
	Scope     string        `enum:"domain,host,all" default:"domain" help:"Admission scope for discovered links"`
	RPS       float64       `name:"rps" help:"Crawl-wide requests per second (0 means unlimited)"`
	Timeout   time.Duration `help:"Per-fetch timeout"`
	Render    bool          `help:"Render pages with headless Chrome"`
	Sitemap   bool          `help:"Expand seeds with sitemap discovery"`
	Retry     bool          `help:"Retry failed fetches with backoff"`
	Save      bool          `short:"s" help:"Persist the crawl report"`
	DB        string        `help:"Database path for saved reports"`
	Verbose   bool          `short:"v" help:"Log every request and response"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Crawl report ID"`
}
