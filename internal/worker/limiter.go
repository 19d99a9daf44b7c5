package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles query evaluation to a configured rate. Batch runs use it
// to keep large query files from saturating the process.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing queriesPerSecond with the given burst
func NewLimiter(queriesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	if queriesPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, burst)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(queriesPerSecond), burst)}
}

// Wait blocks until the next query may proceed
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a query may proceed without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
