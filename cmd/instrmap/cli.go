package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/instrmap"
	"github.com/fwojciec/instrmap/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Scraper *crawl.Scraper
	Store   instrmap.MapStore

	// Runs is nil unless a database was requested.
	Runs instrmap.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string        `short:"u" default:"https://www.felixcloutier.com/x86/" help:"Instruction listing URL"`
	Output  string        `short:"o" default:"asm_instructions.csv" type:"path" help:"Output CSV file (overwritten)"`
	Format  string        `short:"f" default:"joined" enum:"joined,list,rows,xml" help:"Output layout: joined, list, rows (CSV) or xml"`
	DB      string        `env:"INSTRMAP_DB" type:"path" help:"Also record the run in this SQLite database"`
	Browser bool          `short:"b" help:"Render pages with headless Chrome"`
	Timeout time.Duration `short:"t" default:"0s" help:"Per-request timeout (0 waits forever)"`
	Rate    float64       `default:"0" help:"Requests per second per host (0 is unlimited)"`
	Retries int           `default:"0" help:"Retries per failed request, with 1s, 2s, 4s... backoff"`
	Verbose bool          `short:"v" help:"Log every request to stderr"`
}

// Validate checks flag values Kong cannot check by itself.
func (c *CLI) Validate() error {
	if c.Rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// ScrapeCmd runs the whole scrape-and-write pipeline.
type ScrapeCmd struct {
	URL    string
	Output string
}
