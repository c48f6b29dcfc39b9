package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks transient failures of the Redis and MongoDB caches, such
// as timeouts, refused connections and failovers.
var ErrBackend = errors.New("cache backend unavailable")

// RetryDelay is the wait before the second attempt of [RetryWithBackoff].
// Each later wait doubles it.
var RetryDelay = 100 * time.Millisecond

// retryAttempts bounds the calls RetryWithBackoff makes.
const retryAttempts = 3

// RetryableError marks Err as worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err for [RetryWithBackoff]. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or any error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, fails with an error not
// marked [Retryable], or has been tried three times. It stops early when ctx
// is done.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := RetryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
