package enricher

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/dshills/dirdocs/pkg/types"
)

// Retry configuration defaults. Backoff is exponential with a random
// jitter added to each delay so parallel workers do not hammer the
// backend in lockstep.
const (
	MaxAttempts       = 5
	BaseBackoffMs     = 300
	MaxBackoffMs      = 8000
	BackoffMultiplier = 2.0
	MaxJitterMs       = 250
)

// RetryConfig configures exponential backoff retry behavior
type RetryConfig struct {
	MaxAttempts int           // Total attempts including the first try
	BaseDelay   time.Duration // Initial delay between attempts
	MaxDelay    time.Duration // Cap on the exponential delay
	Multiplier  float64       // Exponential backoff multiplier
	MaxJitter   time.Duration // Upper bound of the random jitter per delay
}

// DefaultRetryConfig returns sensible defaults for API retry
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: MaxAttempts,
		BaseDelay:   BaseBackoffMs * time.Millisecond,
		MaxDelay:    MaxBackoffMs * time.Millisecond,
		Multiplier:  BackoffMultiplier,
		MaxJitter:   MaxJitterMs * time.Millisecond,
	}
}

// retryWithBackoff executes fn with exponential backoff retry logic.
// Retry is skipped on context cancellation and on errors wrapping
// types.ErrPermanent; those fail the call immediately.
func retryWithBackoff[T any](ctx context.Context, config RetryConfig, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T
	backoff := config.BaseDelay

	attempts := config.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if errors.Is(err, types.ErrPermanent) {
			return zero, err
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if attempt < attempts-1 {
			delay := backoff
			if config.MaxJitter > 0 {
				delay += time.Duration(rand.Int63n(int64(config.MaxJitter)))
			}
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
				backoff = time.Duration(float64(backoff) * config.Multiplier)
				if backoff > config.MaxDelay {
					backoff = config.MaxDelay
				}
			}
		}
	}

	return zero, lastErr
}
