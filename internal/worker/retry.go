package worker

import (
	"context"
	"fmt"
	"time"
)

// retryBaseDelay is the wait before the second attempt; it doubles afterwards.
var retryBaseDelay = time.Second

// RetryError is returned by withRetry once every attempt has failed.
type RetryError struct {
	Tries int
	Err   error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Tries, e.Err)
}

func (e *RetryError) Unwrap() error { return e.Err }

func (e *RetryError) Attempts() int { return e.Tries }

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; a *RetryError wrapping the last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := retryBaseDelay * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return &RetryError{Tries: maxAttempts, Err: lastErr}
}
