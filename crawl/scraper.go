// Package crawl orchestrates the scrape: listing fetch, sequential detail
// extraction, filtering and aggregation.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/instrmap"
)

// Scraper turns an instruction listing into an InstructionMap.
// Requests are issued one at a time, in listing order.
type Scraper struct {
	Fetcher   instrmap.Fetcher
	Index     instrmap.IndexParser
	Extractor instrmap.IntrinsicExtractor

	// Limiter throttles requests per host. Nil means no throttling.
	Limiter instrmap.DomainLimiter

	// RetryDelays are the waits before each retry of a failed fetch.
	// Nil means every fetch is attempted once.
	RetryDelays []time.Duration

	// Logger receives retry and page diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Run fetches the listing at listingURL, extracts intrinsic lines from every
// linked page, drops auto-generated stubs and folds the rest into a map.
// Nothing is returned unless every page succeeds.
//
// progress, if not nil, is called once with Completed 0 as soon as the
// listing is parsed, even when it is empty, and then after every page.
func (s *Scraper) Run(ctx context.Context, listingURL string, progress instrmap.FetchProgressFunc) (*instrmap.InstructionMap, error) {
	links, err := s.FetchIndex(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(instrmap.FetchProgress{URL: listingURL, Total: len(links)})
	}

	lines, err := s.ExtractAll(ctx, links, progress)
	if err != nil {
		return nil, err
	}

	return instrmap.BuildMap(instrmap.FilterLines(lines)), nil
}

// FetchIndex downloads the listing page and parses its instruction links.
func (s *Scraper) FetchIndex(ctx context.Context, listingURL string) ([]instrmap.InstructionLink, error) {
	html, err := s.fetch(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching listing %s: %w", listingURL, err)
	}

	links, err := s.Index.ParseIndex(html, listingURL)
	if err != nil {
		return nil, fmt.Errorf("parsing listing %s: %w", listingURL, err)
	}
	return links, nil
}

// ExtractAll downloads each link's page in order and returns the raw
// intrinsic lines of all pages, page by page. progress, if not nil, is called
// after every page. The first failure aborts the loop.
func (s *Scraper) ExtractAll(ctx context.Context, links []instrmap.InstructionLink, progress instrmap.FetchProgressFunc) ([]string, error) {
	var lines []string
	total := len(links)

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := s.fetch(ctx, link.URL)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", link.URL, err)
		}

		found, err := s.Extractor.ExtractIntrinsics(html)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", link.URL, err)
		}
		s.logger().Info("page",
			"mnemonic", link.Mnemonic,
			"url", link.URL,
			"lines", len(found),
		)
		lines = append(lines, found...)

		if progress != nil {
			progress(instrmap.FetchProgress{
				URL:       link.URL,
				Completed: i + 1,
				Total:     total,
			})
		}
	}

	return lines, nil
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	fetchFn := func(ctx context.Context, rawURL string) (string, error) {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, hostOf(rawURL)); err != nil {
				return "", err
			}
		}
		return s.Fetcher.Fetch(ctx, rawURL)
	}
	return FetchWithRetryDelays(ctx, rawURL, fetchFn, s.logger(), s.RetryDelays)
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// hostOf returns the host of rawURL, or rawURL itself if it cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
