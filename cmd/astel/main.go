package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/astelhq/astel"
	astelhttp "github.com/astelhq/astel/http"
	"github.com/astelhq/astel/rod"
	astelslog "github.com/astelhq/astel/slog"
	"github.com/astelhq/astel/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used for saved crawl reports.
	DB *sqlite.DB

	// CrawlStore for end-to-end testing.
	CrawlStore astel.CrawlStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("astel"),
		kong.Description("A breadth-first web crawler."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'astel --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cmd == "crawl" && cli.Crawl.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cmd == "crawl" && cli.Crawl.DB != "" {
		m.DBPath = cli.Crawl.DB
	}

	// The database is only needed when a command touches saved reports.
	if cmd == "runs" || cmd == "show" || (cmd == "crawl" && cli.Crawl.Save) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ASTEL_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.CrawlStore = sqlite.NewCrawlStore(m.DB)
		deps.Crawls = m.CrawlStore
	}

	if cmd == "crawl" {
		var fetcher astel.Fetcher
		if cli.Crawl.Render {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			opts := []astelhttp.Option{astelhttp.WithUserAgent(cli.Crawl.UserAgent)}
			if cli.Crawl.Timeout > 0 {
				opts = append(opts, astelhttp.WithTimeout(cli.Crawl.Timeout))
			}
			fetcher = astelhttp.NewFetcher(opts...)
		}
		if cli.Crawl.Verbose {
			fetcher = astelslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		defer fetcher.Close()
		deps.Fetcher = fetcher

		deps.Sitemaps = astelslog.NewLoggingSitemapService(astelhttp.NewSitemapService(nil), deps.Logger)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("ASTEL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "astel.db"
	}
	dir := filepath.Join(home, ".astel")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "astel.db")
}
