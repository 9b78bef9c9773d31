package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RerunLimiter caps how often watch mode re-runs the analysis. Bursts of file
// events that survive debouncing still collapse into at most one run per
// interval.
type RerunLimiter struct {
	inner *rate.Limiter
}

// NewRerunLimiter allows one run per interval with the given burst. A
// non-positive interval disables limiting.
func NewRerunLimiter(interval time.Duration, burst int) *RerunLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RerunLimiter{inner: rate.NewLimiter(limit, burst)}
}

// Allow reports whether a run may start now.
func (l *RerunLimiter) Allow() bool {
	return l.inner.Allow()
}

// Wait blocks until a run may start or ctx is done.
func (l *RerunLimiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}
