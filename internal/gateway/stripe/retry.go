package stripegw

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v74"

	"profast-parcel-service/internal/logx"
)

type gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, trackingCode string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

type counter interface {
	Inc()
}

// RetryConfig bounds the retry loop of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient Stripe failures with capped exponential
// backoff. Creating an intent is safe to retry: the charge only settles when
// the customer confirms it.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway wraps a payment gateway with retries.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// CreateIntent calls the wrapped gateway, retrying transient failures.
func (g *RetryingGateway) CreateIntent(ctx context.Context, amountCents int64, trackingCode string) (*Intent, error) {
	var out *Intent
	err := g.retry(ctx, "CreateIntent", func() error {
		var err error
		out, err = g.next.CreateIntent(ctx, amountCents, trackingCode)
		return err
	})
	return out, err
}

// GetIntent calls the wrapped gateway, retrying transient failures.
func (g *RetryingGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	var out *Intent
	err := g.retry(ctx, "GetIntent", func() error {
		var err error
		out, err = g.next.GetIntent(ctx, id)
		return err
	})
	return out, err
}

func (g *RetryingGateway) retry(ctx context.Context, method string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("payment gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable treats rate limits and Stripe-side failures as transient.
func isRetryable(err error) bool {
	var serr *stripe.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.HTTPStatusCode == 429 || serr.HTTPStatusCode >= 500
}

// backoff computes the retry delay.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
