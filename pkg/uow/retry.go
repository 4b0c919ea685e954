package uow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	defaultRetryAttempts  uint = 3
	defaultRetryBaseDelay      = 20 * time.Millisecond
)

// RetryPolicy bounded retry with exponential backoff. Only errors accepted by Retryable are retried.
type RetryPolicy struct {
	Retryable   func(error) bool
	MaxAttempts uint
	BaseDelay   time.Duration
}

// DefaultRetryPolicy retries nothing until Retryable is set.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultRetryAttempts,
		BaseDelay:   defaultRetryBaseDelay,
	}
}

// Run calls fn until it succeeds, returns a non retryable error or attempts run out. In the last case
// the error wraps both ErrRetriesExhausted and the last failure.
func (p RetryPolicy) Run(ctx context.Context, fn func() error) error {
	attempts := max(p.MaxAttempts, 1)

	var err error
	for attempt := range attempts {
		err = fn()
		if err == nil || p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if attempt+1 == attempts {
			break
		}

		delay := time.Duration(jitter(float64(p.BaseDelay<<attempt), 0.15, 0.15)) //nolint:gosec
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts, err)
}

// jitter returns value scattered by a random percentage within [1-minPercent, 1+maxPercent].
// For minPercent=0.15, maxPercent=0.15 the range is [0.85*value, 1.15*value].
//
// minPercent and maxPercent must be >= 0 (0.1 = 10%), otherwise both fall back to 0.15.
func jitter(value, minPercent, maxPercent float64) float64 {
	if minPercent < 0 || maxPercent < 0 {
		minPercent = 0.15
		maxPercent = 0.15
	}
	factor := 1 - minPercent + rand.Float64()*(minPercent+maxPercent) // nolint:gosec
	return value * factor
}
