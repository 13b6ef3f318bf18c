package worker

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryPolicy defines exponential backoff parameters.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do returns the wrapped error as is.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// NextDelay returns delay for a given attempt (1-based) with clamping.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = time.Second
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1))
	d := time.Duration(delay)
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// Do calls fn until it succeeds, returns a Permanent error, or MaxRetries
// retries have been spent. attempt starts at 1. Waiting between attempts stops
// early when ctx is done.
func (r RetryPolicy) Do(ctx context.Context, fn func(attempt int) error) error {
	retries := r.MaxRetries
	if retries < 0 {
		retries = 0
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = fn(attempt)
		if err == nil {
			return nil
		}

		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt > retries {
			return err
		}

		timer := time.NewTimer(r.NextDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
}
