package domain

import (
	"context"
	"math"
	"time"
)

// RetryPolicy controls how failed non-streaming completions are retried
// with exponential backoff. Only retryable error classes (backend 5xx and
// timeouts, see IsRetryable) are attempted again; streaming calls are never
// retried because a stream is not idempotent once chunks have been
// delivered.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// DefaultRetryPolicy returns a RetryPolicy with sensible defaults:
// 3 attempts, 1s initial delay, 2x multiplier, 30s max delay.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		Multiplier:   2.0,
		MaxDelay:     30 * time.Second,
	}
}

// NextDelay returns the backoff delay for the given attempt number
// (1-indexed): InitialDelay * Multiplier^(attempt-1), capped at MaxDelay.
func (p *RetryPolicy) NextDelay(attempt int) time.Duration {
	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// Do runs fn up to MaxAttempts times, sleeping between retries with
// exponential backoff. It returns nil on success, the error unchanged when
// it is not retryable, or the last error when all attempts fail. Context
// cancellation interrupts the backoff sleep.
func (p *RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
		if attempt < p.MaxAttempts {
			select {
			case <-time.After(p.NextDelay(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}
