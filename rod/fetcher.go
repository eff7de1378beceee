// Package rod provides a browser-backed instrmap.Fetcher for reference
// sites that only render their tables with JavaScript.
package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/instrmap"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements instrmap.Fetcher at compile time.
var _ instrmap.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using headless Chrome.
// The browser is recycled every DefaultMaxPages pages so memory stays flat
// across a full listing.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout  time.Duration
	maxPages int64
}

// WithFetchTimeout bounds each page load. Zero, the default, means no bound
// beyond the caller's context.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter sets how many pages are loaded before the browser is restarted.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(WithMaxPages(cfg.maxPages))
	if err != nil {
		return nil, err
	}

	return &Fetcher{manager: manager, timeout: cfg.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	browser := f.manager.Browser()
	if browser == nil {
		return "", errors.New("browser closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
