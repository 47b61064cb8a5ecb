package service

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/octobees/leadstorm/internal/config"
)

// Pacer spaces out calls to external services.
type Pacer interface {
	Wait(ctx context.Context) error
}

// RatePacer is a token bucket pacer.
type RatePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer allows cfg.Requests calls per cfg.Interval with no burst beyond one call.
func NewRatePacer(cfg config.RateLimitConfig) *RatePacer {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return &RatePacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	every := cfg.Interval / time.Duration(cfg.Requests)
	return &RatePacer{limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// Wait blocks until the next call may proceed or ctx is done.
func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NoPacer never waits.
type NoPacer struct{}

// Wait only reports context cancellation.
func (NoPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
