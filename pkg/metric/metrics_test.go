package metric_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tufitko/minmaxheap/pkg/metric"
)

func TestHeapMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metric.NewHeapMetrics("test", metric.DefaultOperationDurationBuckets)
	m.MustRegisterTo(reg)

	m.OperationsCount.WithLabelValues("insert").Inc()
	m.OperationsCount.WithLabelValues("insert").Inc()
	m.OperationErrorsCount.WithLabelValues("extract-max", "empty").Inc()
	m.Size.Set(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.OperationsCount.WithLabelValues("insert")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OperationErrorsCount.WithLabelValues("extract-max", "empty")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Size))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_heap_operations_total")
	assert.Contains(t, names, "test_heap_size")
}
