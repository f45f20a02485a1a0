package web

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// politeness spaces fetches at least delay apart. The first Wait returns
// immediately, so no pause follows the last fetch.
type politeness struct {
	limiter *rate.Limiter
}

func newPoliteness(delay time.Duration) *politeness {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &politeness{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next fetch may start or ctx is done.
func (p *politeness) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
