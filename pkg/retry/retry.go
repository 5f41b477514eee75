// Package retry runs an operation a bounded number of times with a growing
// pause between attempts.
package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrStopRetry ends a retry loop early. Err, when set, is the failure that
// made further attempts pointless.
type ErrStopRetry struct {
	Reason string
	Err    error
}

func (e *ErrStopRetry) Error() string {
	switch {
	case e.Err == nil:
		return e.Reason
	case e.Reason == "":
		return e.Err.Error()
	default:
		return e.Reason + ": " + e.Err.Error()
	}
}

func (e *ErrStopRetry) Unwrap() error { return e.Err }

// Stop wraps err so Do returns it without further attempts.
func Stop(err error) error {
	return &ErrStopRetry{Err: err}
}

// Stopped reports whether err ended the loop through Stop.
func Stopped(err error) bool {
	var stop *ErrStopRetry
	return errors.As(err, &stop)
}

// Cause strips the Stop wrapper, if any.
func Cause(err error) error {
	var stop *ErrStopRetry
	if errors.As(err, &stop) && stop.Err != nil {
		return stop.Err
	}
	return err
}

// Retry is a bounded attempt policy. The pause before attempt n+1 is
// delay * factor^(n-1).
type Retry struct {
	maxAttempts int
	delay       time.Duration
	factor      float64
}

func New(maxAttempts int, delay time.Duration, factor float64) Retry {
	if factor == 0 {
		factor = 1
	}
	return Retry{maxAttempts: maxAttempts, delay: delay, factor: factor}
}

// NewOnce makes a single attempt.
func NewOnce() Retry {
	return New(1, 0, 1)
}

// Pause is how long to wait after the given failed attempt.
func (r Retry) Pause(attempt int) time.Duration {
	d := float64(r.delay)
	for i := 1; i < attempt; i++ {
		d *= r.factor
	}
	return time.Duration(d)
}

func (r Retry) Do(fn func(attempt int) error) error {
	return r.DoContext(context.Background(), fn)
}

// DoContext is Do that also gives up, with ctx.Err(), once ctx is done.
// There is no pause after the last attempt.
func (r Retry) DoContext(ctx context.Context, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err = fn(attempt); err == nil || Stopped(err) {
			return err
		}
		if attempt == r.maxAttempts {
			break
		}
		timer := time.NewTimer(r.Pause(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
