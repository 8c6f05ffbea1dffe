package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/docrag"
	"golang.org/x/time/rate"
)

var _ docrag.Limiter = (*RPMLimiter)(nil)

// RPMLimiter enforces a requests-per-minute budget for one external
// collaborator using a token bucket. Unlike last-call-time pacing, it is
// safe and fair under concurrent callers.
type RPMLimiter struct {
	limiter *rate.Limiter
}

// NewRPMLimiter creates a limiter allowing rpm requests per minute with a
// burst of 1 (no bursting allowed).
func NewRPMLimiter(rpm int) *RPMLimiter {
	return &RPMLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

// Wait blocks until the budget allows another call.
// Returns an error if the context is canceled before the wait completes.
func (l *RPMLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
