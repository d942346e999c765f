package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

const (
	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// Pacer spaces outbound listing calls at a fixed interval so repeated
// full resyncs stay inside GitHub's rate limits, and tracks the
// X-RateLimit-* response headers so a 403 can be classified.
type Pacer struct {
	bucket *rate.Limiter

	mu        sync.Mutex
	remaining int
	limit     int
	resetAt   time.Time
}

// NewPacer creates a pacer with the given minimum gap between calls.
// A non-positive interval falls back to the default.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = domain.DefaultPaceInterval
	}
	return &Pacer{
		bucket:    rate.NewLimiter(rate.Every(interval), 1),
		remaining: -1,
		limit:     -1,
	}
}

// Wait blocks until the next call may be issued. An interrupted wait is
// reported via the context error; callers treat it as shutdown, not as
// permission to skip the pause.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.bucket.Wait(ctx)
}

// Observe updates rate limit state from response headers.
func (p *Pacer) Observe(resp *http.Response) {
	if resp == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if v := resp.Header.Get(HeaderRateRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.remaining = n
		}
	}
	if v := resp.Header.Get(HeaderRateLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.limit = n
		}
	}
	if v := resp.Header.Get(HeaderRateReset); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.resetAt = time.Unix(n, 0)
		}
	}
}

// Exhausted reports whether the tracked quota is spent.
func (p *Pacer) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remaining == 0
}

// limitError builds a RateLimitError from the tracked state.
func (p *Pacer) limitError() *RateLimitError {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &RateLimitError{
		ResetAt:   p.resetAt,
		Remaining: p.remaining,
		Limit:     p.limit,
	}
}
