package stream

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tufitko/minmaxheap/pkg/labels"
)

var (
	resultSizeBytes       *prometheus.HistogramVec
	resultDurationSeconds *prometheus.HistogramVec
	commandsConsumed      *prometheus.CounterVec
	metricsOnce           sync.Once
)

// initMetrics registers the stream metrics once per process. The producer
// and the consumer both call it.
func initMetrics(appName string) {
	metricsOnce.Do(func() {
		resultSizeBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   appName,
			Name:        "result_message_size_bytes",
			Help:        "Published command result size histogram",
			ConstLabels: labels.Labels,
			Buckets:     prometheus.ExponentialBuckets(64, 4, 8),
		}, []string{"message_type", "topic"})
		resultDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   appName,
			Name:        "result_message_duration_seconds",
			Help:        "Published command result send duration histogram",
			ConstLabels: labels.Labels,
			Buckets:     []float64{0.01, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"message_type", "topic"})
		commandsConsumed = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   appName,
			Name:        "commands_consumed_total",
			Help:        "Command messages read from the source topics",
			ConstLabels: labels.Labels,
		}, []string{"message_type", "topic"})
		prometheus.MustRegister(resultSizeBytes, resultDurationSeconds, commandsConsumed)
	})
}
