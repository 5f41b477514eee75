package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tufitko/minmaxheap/pkg/labels"
)

// HeapMetrics tracks operations applied to a heap.
type HeapMetrics struct {
	OperationsCount          *prometheus.CounterVec
	OperationErrorsCount     *prometheus.CounterVec
	OperationDurationSeconds *prometheus.HistogramVec
	Size                     prometheus.Gauge
	InvariantViolations      prometheus.Gauge
}

type OperationDurationBuckets []float64

var DefaultOperationDurationBuckets = OperationDurationBuckets{.00001, .0001, .001, .01, .1, 1}

func NewHeapMetrics(namespace string, buckets OperationDurationBuckets) *HeapMetrics {
	return &HeapMetrics{
		OperationsCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "heap_operations_total",
			Help:        "Count of applied heap operations of exact type",
			ConstLabels: labels.Labels,
		}, []string{"operation"}),
		OperationErrorsCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "heap_operation_errors_total",
			Help:        "Count of rejected heap operations by type and reason",
			ConstLabels: labels.Labels,
		}, []string{"operation", "reason"}),
		OperationDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "heap_operation_duration_seconds",
			Help:        "Heap operation duration histogram",
			ConstLabels: labels.Labels,
			Buckets:     buckets,
		}, []string{"operation"}),
		Size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "heap_size",
			Help:        "Number of elements currently held",
			ConstLabels: labels.Labels,
		}),
		InvariantViolations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "heap_invalid",
			Help:        "1 when the last operation left the min-max ordering broken",
			ConstLabels: labels.Labels,
		}),
	}
}

func (m *HeapMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.OperationsCount,
		m.OperationErrorsCount,
		m.OperationDurationSeconds,
		m.Size,
		m.InvariantViolations,
	}
}

func (m *HeapMetrics) MustRegister() {
	m.MustRegisterTo(prometheus.DefaultRegisterer)
}

func (m *HeapMetrics) MustRegisterTo(r prometheus.Registerer) {
	r.MustRegister(m.collectors()...)
}
