package fetch

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/ghdocs"
	"golang.org/x/time/rate"
)

var _ ghdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host so downloads from
// raw.githubusercontent.com and the API host are throttled separately.
// Hosts are matched case-insensitively and without a port.
type DomainLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	rps       float64
	overrides map[string]float64
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithHostRate sets the rate for a single host, overriding the default.
func WithHostRate(host string, rps float64) LimiterOption {
	return func(d *DomainLimiter) {
		d.overrides[hostKey(host)] = rps
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, with a burst of 1. A rate of zero or less disables
// throttling.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limiters:  make(map[string]*rate.Limiter),
		rps:       rps,
		overrides: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := hostKey(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		rps, ok := d.overrides[key]
		if !ok {
			rps = d.rps
		}
		limit := rate.Inf
		if rps > 0 {
			limit = rate.Limit(rps)
		}
		limiter = rate.NewLimiter(limit, 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

func hostKey(domain string) string {
	domain = strings.ToLower(domain)
	if h, _, err := net.SplitHostPort(domain); err == nil {
		return h
	}
	return domain
}
