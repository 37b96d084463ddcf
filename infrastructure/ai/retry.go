package ai

import (
	"context"
	"time"
)

// Policy controls retries against the upstream provider: a fixed number of
// attempts with exponential backoff between them.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64

	// sleep is swapped in tests to avoid real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy matches the provider contract: three attempts with 1s then 2s
// pauses between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
		sleep:       sleepCtx,
	}
}

// Do runs fn up to MaxAttempts times, backing off between attempts. It stops
// early on success, on a non-retryable error, or when the context is done.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var err error
	delay := p.BaseDelay
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		// A per-attempt timeout is retryable; the caller's context being
		// done is not.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !IsRetryable(err) || attempt == p.MaxAttempts {
			return err
		}
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
