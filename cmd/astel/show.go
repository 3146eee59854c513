package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/astelhq/astel"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	record, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", astel.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawl %s\n", record.ID)
	fmt.Fprintf(deps.Stdout, "  Seeds:    %s\n", strings.Join(record.Seeds, ", "))
	fmt.Fprintf(deps.Stdout, "  Started:  %s\n", record.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "  Outcome:  %s after %s\n", record.Outcome, record.Duration.Round(time.Millisecond))
	fmt.Fprintf(deps.Stdout, "  Totals:   seen=%d crawled=%d failed=%d\n", record.SeenCount, record.Crawled, record.Failed)

	for _, u := range record.URLs {
		switch {
		case u.Error != "":
			fmt.Fprintf(deps.Stdout, "  FAIL  %s  %s\n", u.URL, u.Error)
		case u.StatusCode != 0:
			fmt.Fprintf(deps.Stdout, "  %d   %s  %s\n", u.StatusCode, u.URL, u.ContentHash)
		default:
			fmt.Fprintf(deps.Stdout, "  -     %s\n", u.URL)
		}
	}

	return nil
}
