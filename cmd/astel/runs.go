package main

import (
	"fmt"
	"time"

	"github.com/astelhq/astel"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	records, err := deps.Crawls.FindCrawls(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", astel.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved crawls. Use 'astel crawl --save' to create one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-9s  seen=%d crawled=%d failed=%d  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Outcome,
			r.SeenCount, r.Crawled, r.Failed, r.Seeds[0])
	}

	return nil
}
