package command_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tufitko/minmaxheap/pkg/command"
	"github.com/tufitko/minmaxheap/pkg/heap"
	"github.com/tufitko/minmaxheap/pkg/metric"
	"github.com/tufitko/minmaxheap/pkg/retry"
)

func exec(t *testing.T, d *command.Dispatcher, cmd command.Command) command.Result {
	t.Helper()
	res, err := d.Execute(context.Background(), cmd)
	require.NoError(t, err)
	return res
}

func TestDispatcher_Session(t *testing.T) {
	d := command.NewDispatcher()
	assert.False(t, d.Built())

	res := exec(t, d, command.Command{Kind: command.Build, Values: []int{5, 2, 8, 1, 9, 3}})
	assert.True(t, d.Built())
	assert.Equal(t, []int{9, 1, 3, 2, 5, 8}, res.Elements)
	assert.True(t, res.Valid)
	assert.Nil(t, res.Value)

	res = exec(t, d, command.Command{Kind: command.ExtractMax})
	require.NotNil(t, res.Value)
	assert.Equal(t, 9, *res.Value)

	res = exec(t, d, command.Command{Kind: command.ExtractMin})
	require.NotNil(t, res.Value)
	assert.Equal(t, 1, *res.Value)
	assert.Equal(t, []int{8, 2, 3, 5}, res.Elements)

	res = exec(t, d, command.Command{Kind: command.Insert, Value: 20})
	assert.Equal(t, 20, res.Elements[0])

	res = exec(t, d, command.Command{Kind: command.Heapify, Index: 99})
	assert.Len(t, res.Elements, 5)

	res = exec(t, d, command.Command{Kind: command.Exit})
	assert.True(t, res.Exit)
}

func TestDispatcher_Errors(t *testing.T) {
	d := command.NewDispatcher()

	_, err := d.Execute(context.Background(), command.Command{Kind: command.ExtractMax})
	assert.True(t, errors.Is(err, heap.ErrEmptyHeap))
	assert.Equal(t, "empty", command.Reason(err))

	exec(t, d, command.Command{Kind: command.Build, Values: []int{1, 2, 3}})
	_, err = d.Execute(context.Background(), command.Command{Kind: command.Delete, Index: 5})
	assert.True(t, errors.Is(err, heap.ErrIndexOutOfRange))
	elements, valid := d.Snapshot()
	assert.Equal(t, []int{3, 2, 1}, elements)
	assert.True(t, valid)

	_, err = d.Execute(context.Background(), command.Command{})
	assert.True(t, errors.Is(err, command.ErrUnknownCommand))
	assert.Equal(t, "unknown_command", command.Reason(err))
}

func TestDispatcher_BuildFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads and builds", func(t *testing.T) {
		path := filepath.Join(dir, "ok.txt")
		require.NoError(t, os.WriteFile(path, []byte("5 2 8 1 9 3"), 0o644))

		d := command.NewDispatcher()
		res := exec(t, d, command.Command{Kind: command.Build, Path: path})
		assert.Equal(t, []int{9, 1, 3, 2, 5, 8}, res.Elements)
	})

	t.Run("missing file is retried", func(t *testing.T) {
		d := command.NewDispatcher(command.WithLoadRetry(retry.New(3, 0, 0)))
		_, err := d.Execute(context.Background(), command.Command{Kind: command.Build, Path: filepath.Join(dir, "missing.txt")})
		assert.True(t, errors.Is(err, heap.ErrSourceUnavailable))
		assert.False(t, d.Built())
	})

	t.Run("malformed file is not retried and keeps the old heap", func(t *testing.T) {
		path := filepath.Join(dir, "bad.txt")
		require.NoError(t, os.WriteFile(path, []byte("1 2 x"), 0o644))

		d := command.NewDispatcher(command.WithLoadRetry(retry.New(3, 0, 0)))
		exec(t, d, command.Command{Kind: command.Build, Values: []int{4}})
		_, err := d.Execute(context.Background(), command.Command{Kind: command.Build, Path: path})
		assert.True(t, errors.Is(err, heap.ErrMalformedInput))
		elements, _ := d.Snapshot()
		assert.Equal(t, []int{4}, elements)
	})
}

func TestDispatcher_RepairedDelete(t *testing.T) {
	values := []int{20, 5, 1, 10, 9, 15, 12, 6, 7, 6, 8, 2}

	d := command.NewDispatcher()
	h := heap.NewHeapFrom(values)
	h.Build()
	exec(t, d, command.Command{Kind: command.Build, Values: h.Snapshot()})
	res := exec(t, d, command.Command{Kind: command.Delete, Index: 3})
	assert.False(t, res.Valid)

	d = command.NewDispatcher(command.WithRepairedDelete(true))
	exec(t, d, command.Command{Kind: command.Build, Values: h.Snapshot()})
	res = exec(t, d, command.Command{Kind: command.Delete, Index: 3})
	assert.True(t, res.Valid)
}

func TestDispatcher_Metrics(t *testing.T) {
	m := metric.NewHeapMetrics("dispatcher_test", metric.DefaultOperationDurationBuckets)
	d := command.NewDispatcher(command.WithMetrics(m))

	exec(t, d, command.Command{Kind: command.Insert, Value: 1})
	exec(t, d, command.Command{Kind: command.Insert, Value: 2})
	_, _ = d.Execute(context.Background(), command.Command{Kind: command.Delete, Index: 7})

	assert.Equal(t, float64(2), testutil.ToFloat64(m.OperationsCount.WithLabelValues("insert")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OperationErrorsCount.WithLabelValues("delete", "out_of_range")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Size))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InvariantViolations))
}

func TestDispatcher_Concurrent(t *testing.T) {
	d := command.NewDispatcher()
	wg := new(sync.WaitGroup)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			_, err := d.Execute(context.Background(), command.Command{Kind: command.Insert, Value: v})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	elements, valid := d.Snapshot()
	assert.Len(t, elements, 64)
	assert.True(t, valid)
	assert.Equal(t, 63, elements[0])
}
