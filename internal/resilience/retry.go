// Package resilience wraps the two external intake calls with retry and a
// circuit breaker. Only transient failures are retried; validation and
// client errors surface immediately.
package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy controls retry behavior with exponential backoff and jitter.
type RetryPolicy struct {
	// MaxAttempts counts the first try too; 1 disables retries.
	MaxAttempts int
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration
	// MaxBackoff caps the computed delay.
	MaxBackoff time.Duration
}

// DefaultRetryPolicy suits interactive intake calls: short backoff, few
// attempts, the citizen is waiting.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 400 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = 400 * time.Millisecond
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = 5 * time.Second
	}
	return p
}

// backoff doubles per attempt with ±25% jitter, capped at MaxBackoff.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := float64(p.InitialBackoff) * math.Pow(2, float64(attempt))
	if delay > float64(p.MaxBackoff) {
		delay = float64(p.MaxBackoff)
	}
	delay += (rand.Float64() - 0.5) * 0.5 * delay
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// Retry runs fn until it succeeds, fails non-transiently, exhausts
// MaxAttempts, or the context ends. The value from the successful attempt
// is returned.
func Retry[T any](ctx context.Context, policy RetryPolicy, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	policy = policy.withDefaults()

	var zero T
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) {
			return zero, lastErr
		}
		if attempt >= policy.MaxAttempts-1 {
			break
		}

		zap.L().Warn("resilience: retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		timer := time.NewTimer(policy.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}
