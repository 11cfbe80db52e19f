package checker

import "cryptoalerts/internal/metrics"

// MetricsRecorder records per-cycle outcomes.
type MetricsRecorder interface {
	RecordEvaluated()
	RecordTriggered()
	RecordSkipped()
	RecordError()
}

// NoOpMetrics is a MetricsRecorder that does nothing.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordEvaluated() {}
func (NoOpMetrics) RecordTriggered() {}
func (NoOpMetrics) RecordSkipped()   {}
func (NoOpMetrics) RecordError()     {}

// metricsAdapter bridges the collector to the checker's recorder interface.
type metricsAdapter struct {
	collector *metrics.Collector
}

// NewMetricsAdapter wraps a collector as a MetricsRecorder. A nil collector
// yields a no-op recorder.
func NewMetricsAdapter(c *metrics.Collector) MetricsRecorder {
	if c == nil {
		return NoOpMetrics{}
	}
	return &metricsAdapter{collector: c}
}

func (a *metricsAdapter) RecordEvaluated() {
	a.collector.RecordProcessed()
	a.collector.IncrementCustom("alerts_evaluated")
}

func (a *metricsAdapter) RecordTriggered() {
	a.collector.IncrementCustom("alerts_triggered")
}

func (a *metricsAdapter) RecordSkipped() {
	a.collector.IncrementCustom("alerts_skipped")
}

func (a *metricsAdapter) RecordError() {
	a.collector.RecordError()
}
