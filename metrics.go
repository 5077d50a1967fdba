package streamknn

import (
	"errors"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    learnCounter     prometheus.Counter
//	    predictHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordLearn(duration time.Duration) {
//	    p.learnCounter.Inc()
//	    // ... record duration, etc.
//	}
type MetricsCollector interface {
	// RecordLearn is called after each learn operation.
	// duration is the total time taken.
	RecordLearn(duration time.Duration)

	// RecordPredict is called after each predict operation.
	// duration is the total time taken, err is nil if a prediction was
	// produced and ErrInsufficientData during warm-up.
	RecordPredict(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLearn(time.Duration)          {}
func (NoopMetricsCollector) RecordPredict(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LearnCount        atomic.Int64
	LearnTotalNanos   atomic.Int64
	PredictCount      atomic.Int64
	PredictSkipped    atomic.Int64
	PredictErrors     atomic.Int64
	PredictTotalNanos atomic.Int64
}

// RecordLearn implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLearn(duration time.Duration) {
	b.LearnCount.Add(1)
	b.LearnTotalNanos.Add(duration.Nanoseconds())
}

// RecordPredict implements MetricsCollector. Warm-up refusals count as
// skipped, not as errors.
func (b *BasicMetricsCollector) RecordPredict(duration time.Duration, err error) {
	b.PredictCount.Add(1)
	b.PredictTotalNanos.Add(duration.Nanoseconds())

	switch {
	case errors.Is(err, ErrInsufficientData):
		b.PredictSkipped.Add(1)
	case err != nil:
		b.PredictErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LearnCount:      b.LearnCount.Load(),
		LearnAvgNanos:   b.getAvgLearnNanos(),
		PredictCount:    b.PredictCount.Load(),
		PredictSkipped:  b.PredictSkipped.Load(),
		PredictErrors:   b.PredictErrors.Load(),
		PredictAvgNanos: b.getAvgPredictNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgLearnNanos() int64 {
	count := b.LearnCount.Load()
	if count == 0 {
		return 0
	}

	return b.LearnTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgPredictNanos() int64 {
	count := b.PredictCount.Load()
	if count == 0 {
		return 0
	}

	return b.PredictTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LearnCount      int64
	LearnAvgNanos   int64
	PredictCount    int64
	PredictSkipped  int64
	PredictErrors   int64
	PredictAvgNanos int64
}
