package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/instrmap"
	"github.com/fwojciec/instrmap/crawl"
	"github.com/fwojciec/instrmap/fs"
	"github.com/fwojciec/instrmap/goquery"
	instrhttp "github.com/fwojciec/instrmap/http"
	"github.com/fwojciec/instrmap/rod"
	instrslog "github.com/fwojciec/instrmap/slog"
	"github.com/fwojciec/instrmap/sqlite"
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
	// SQLite database, opened only when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
// With no arguments it scrapes the default listing into the default file.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("instrmap"),
		kong.Description("Map x86 instruction mnemonics to compiler intrinsics"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if err := cli.Validate(); err != nil {
		return err
	}

	format, err := fs.ParseValueFormat(cli.Format)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	var fetcher instrmap.Fetcher
	if cli.Browser {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		fetcher = instrhttp.NewFetcher(instrhttp.WithTimeout(cli.Timeout))
	}
	fetcher = instrslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	deps.Scraper = &crawl.Scraper{
		Fetcher:     fetcher,
		Index:       instrslog.NewLoggingIndexParser(goquery.NewIndexParser(), logger),
		Extractor:   goquery.NewIntrinsicExtractor(),
		RetryDelays: crawl.RetryDelays(cli.Retries),
		Logger:      logger,
	}
	if cli.Rate > 0 {
		deps.Scraper.Limiter = crawl.NewDomainLimiter(cli.Rate)
	}

	deps.Store = instrslog.NewLoggingMapStore(fs.NewMapFile(cli.Output, format), cli.Output, logger)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set INSTRMAP_DB or --db to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB, cli.URL)
	}

	cmd := &ScrapeCmd{
		URL:    cli.URL,
		Output: cli.Output,
	}

	return cmd.Run(deps)
}
