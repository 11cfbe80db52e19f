package writer

import "cryptoalerts/internal/metrics"

// MetricsRecorder records event processing outcomes.
type MetricsRecorder interface {
	RecordReceived()
	RecordProcessed()
	RecordError()
}

// NoOpMetrics is a MetricsRecorder that does nothing.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordReceived()  {}
func (NoOpMetrics) RecordProcessed() {}
func (NoOpMetrics) RecordError()     {}

// NewMetricsAdapter wraps a collector as a MetricsRecorder. A nil collector
// yields a no-op recorder; *metrics.Collector already satisfies the interface.
func NewMetricsAdapter(c *metrics.Collector) MetricsRecorder {
	if c == nil {
		return NoOpMetrics{}
	}
	return c
}
