package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/instrmap"
)

// Run executes the scrape command.
// The output file is only written after every page has been processed.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	var total int
	progress := func(p instrmap.FetchProgress) {
		if p.Completed == 0 {
			total = p.Total
			fmt.Fprintf(deps.Stdout, "Got the list of assembly instructions (%d found)\n", p.Total)
			return
		}
		fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", p.Completed, p.Total, truncateURL(p.URL, 40))
	}

	m, err := deps.Scraper.Run(deps.Ctx, c.URL, progress)
	if total > 0 {
		// Clear progress line
		fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var previous *instrmap.Run
	if deps.Runs != nil {
		previous, err = deps.Runs.FindLatestRun(deps.Ctx)
		if err != nil && instrmap.ErrorCode(err) != instrmap.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error reading runs: %v\n", err)
			return err
		}
	}

	if err := deps.Store.SaveMap(deps.Ctx, m); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Output, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d mnemonics to %s\n", m.Len(), c.Output)

	if deps.Runs != nil {
		if err := deps.Runs.SaveMap(deps.Ctx, m); err != nil {
			fmt.Fprintf(deps.Stderr, "error recording run: %v\n", err)
			return err
		}
		latest, err := deps.Runs.FindLatestRun(deps.Ctx)
		if err != nil {
			return err
		}
		if previous != nil && previous.ContentHash == latest.ContentHash {
			fmt.Fprintf(deps.Stdout, "Recorded run %s (unchanged since %s)\n", latest.ID, previous.ID)
		} else {
			fmt.Fprintf(deps.Stdout, "Recorded run %s\n", latest.ID)
		}
	}

	return nil
}

// truncateURL shortens a URL for display by showing only the path.
// This makes progress more useful when many URLs share the same host prefix.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback to simple right-truncation
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}
