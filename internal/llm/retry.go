package llm

import (
	"context"
	"time"
)

// RetryPolicy describes how a classifier call is retried: attempt budget,
// exponential backoff, and a predicate deciding which errors are worth
// another attempt. It replaces implicit retry annotations with an explicit
// object invoked imperatively around the call.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	Retryable    func(error) bool
}

// DefaultRetryPolicy returns the standard classifier policy: 3 attempts with
// exponential backoff of 1s, 2s, 4s between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		Multiplier:   2,
		Retryable:    Retryable,
	}
}

// Do runs fn until it succeeds, the attempt budget is exhausted, a
// non-retryable error occurs, or the context is cancelled. It returns the
// last result together with the number of retries performed (attempts beyond
// the first).
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) (string, error)) (result string, retries int, err error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.InitialDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			retries++
		}

		result, err = fn(ctx)
		if err == nil {
			return result, retries, nil
		}

		if p.Retryable != nil && !p.Retryable(err) {
			return "", retries, err
		}

		if attempt == attempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", retries, ctx.Err()
		}

		if p.Multiplier > 0 {
			delay = time.Duration(float64(delay) * p.Multiplier)
		}
	}

	return "", retries, err
}
