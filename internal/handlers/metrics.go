package handlers

import "cryptoalerts/internal/metrics"

// MetricsRecorder abstracts metrics collection for the intake API.
type MetricsRecorder interface {
	RecordReceived()
	RecordProcessed()
	RecordError()
}

// NoOpMetrics is used when no metrics backend is configured.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordReceived()  {}
func (NoOpMetrics) RecordProcessed() {}
func (NoOpMetrics) RecordError()     {}

// NewMetricsAdapter returns a MetricsRecorder backed by the collector,
// or a no-op recorder when the collector is nil.
func NewMetricsAdapter(c *metrics.Collector) MetricsRecorder {
	if c == nil {
		return NoOpMetrics{}
	}
	return c
}
