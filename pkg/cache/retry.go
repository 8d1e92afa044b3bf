package cache

import (
	"context"
	"errors"
	"time"
)

// Redis calls are attempted retryAttempts times. The wait starts at
// retryBaseDelay and doubles between attempts.
const retryAttempts = 3

var retryBaseDelay = 50 * time.Millisecond

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an unmarked error
// or runs out of attempts. Exhausted retries return the underlying error
// without the [RetryableError] wrapper.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts {
			var re *RetryableError
			errors.As(err, &re)
			return re.Err
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
