package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/instrmap"
	"golang.org/x/time/rate"
)

var _ instrmap.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each host at a fixed rate, enabled by
// --rate. A scrape normally touches a single host, so in practice it puts a
// minimum gap between the listing request and every detail page request.
// Hrefs that leave the listing host get a bucket of their own.
type DomainLimiter struct {
	rps float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second per
// host, with no burst: the second request to a host waits 1/rps.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		rps:     rps,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until host may be requested again or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(host).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[host]
	if !ok {
		b = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.buckets[host] = b
	}
	return b
}
