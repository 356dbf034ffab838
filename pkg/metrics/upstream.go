package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records fetch activity against the commerce platform API.
type UpstreamMetrics struct {
	duration  *prometheus.HistogramVec
	success   *prometheus.CounterVec
	failure   *prometheus.CounterVec
	batchSize *prometheus.HistogramVec
}

// NewUpstreamMetrics registers the upstream fetch metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_fetch_duration_seconds",
		Help:    "Duration of commerce platform fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_fetch_success",
		Help: "Successful commerce platform fetches.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_fetch_failure",
		Help: "Failed commerce platform fetches.",
	}, []string{"operation"})
	batchSize := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_fetch_batch_size",
		Help:    "Record counts returned by commerce platform fetches.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure, batchSize)
	return &UpstreamMetrics{
		duration:  duration,
		success:   success,
		failure:   failure,
		batchSize: batchSize,
	}
}

// ObserveDuration records the duration for the named operation.
func (u *UpstreamMetrics) ObserveDuration(operation string, duration time.Duration) {
	if u == nil || u.duration == nil {
		return
	}
	u.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (u *UpstreamMetrics) IncSuccess(operation string) {
	if u == nil || u.success == nil {
		return
	}
	u.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (u *UpstreamMetrics) IncFailure(operation string) {
	if u == nil || u.failure == nil {
		return
	}
	u.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveBatchSize records how many records a fetch returned.
func (u *UpstreamMetrics) ObserveBatchSize(operation string, count int) {
	if u == nil || u.batchSize == nil {
		return
	}
	u.batchSize.WithLabelValues(normalizeLabel(operation)).Observe(float64(count))
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
