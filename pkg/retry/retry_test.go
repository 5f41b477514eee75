package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/tufitko/minmaxheap/pkg/retry"
)

func TestRetry_Do(t *testing.T) {
	errBusy := errors.New("busy")
	errBad := errors.New("malformed")

	tests := []struct {
		name     string
		retry    retry.Retry
		results  []error
		attempts int
		wantErr  error
	}{
		{name: "first attempt succeeds", retry: retry.New(3, 0, 0), results: []error{nil}, attempts: 1},
		{name: "succeeds after failures", retry: retry.New(3, 0, 0), results: []error{errBusy, errBusy, nil}, attempts: 3},
		{name: "gives up with last error", retry: retry.New(2, 0, 0), results: []error{errBusy, errBusy}, attempts: 2, wantErr: errBusy},
		{name: "once", retry: retry.NewOnce(), results: []error{errBusy}, attempts: 1, wantErr: errBusy},
		{name: "stop ends early", retry: retry.New(5, 0, 0), results: []error{retry.Stop(errBad)}, attempts: 1, wantErr: errBad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := tt.retry.Do(func(attempt int) error {
				attempts++
				assert.Equal(t, attempts, attempt)
				return tt.results[attempt-1]
			})
			assert.Equal(t, tt.attempts, attempts)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestRetry_DoContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := retry.New(5, time.Hour, 1).DoContext(ctx, func(_ int) error {
		attempts++
		cancel()
		return errors.New("unavailable")
	})
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 1, attempts)
}

func TestRetry_Pause(t *testing.T) {
	r := retry.New(4, 100*time.Millisecond, 2)
	assert.Equal(t, 100*time.Millisecond, r.Pause(1))
	assert.Equal(t, 200*time.Millisecond, r.Pause(2))
	assert.Equal(t, 400*time.Millisecond, r.Pause(3))
	assert.Equal(t, time.Duration(0), retry.NewOnce().Pause(1))
}

func TestCause(t *testing.T) {
	errBad := errors.New("malformed")
	assert.Equal(t, errBad, retry.Cause(retry.Stop(errBad)))
	assert.Equal(t, errBad, retry.Cause(errBad))
	assert.True(t, retry.Stopped(errors.Wrap(retry.Stop(errBad), "load")))
	assert.False(t, retry.Stopped(errBad))
}
