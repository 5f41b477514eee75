package service_test

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tufitko/minmaxheap/pkg/service"
)

func TestWait(t *testing.T) {
	got := make(chan os.Signal, 1)
	go func() {
		got <- service.Wait([]os.Signal{syscall.SIGUSR1, syscall.SIGUSR2})
	}()
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR2))

	select {
	case sig := <-got:
		assert.Equal(t, syscall.SIGUSR2, sig)
	case <-time.After(time.Second):
		t.Fatal("signal wait timed out after one second")
	}
}
