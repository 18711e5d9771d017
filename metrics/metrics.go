// Package metrics collects simulation timings and sizes and exports them in
// the Prometheus text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	timeStepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interferometer_time_steps_total",
			Help: "Total number of observation time steps simulated.",
		},
	)

	stepDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interferometer_step_duration_seconds",
			Help:    "Duration of one observation time step in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		},
	)

	synthesisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interferometer_synthesis_duration_seconds",
			Help:    "Duration of the final image synthesis in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 16),
		},
	)

	baselineSamples = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "interferometer_baseline_samples",
			Help: "Number of (u,v) samples used in the last synthesis.",
		},
	)

	synthesisBlocksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interferometer_synthesis_blocks_total",
			Help: "Total number of baseline blocks evaluated during synthesis.",
		},
	)
)

func init() {
	registry.MustRegister(timeStepsTotal)
	registry.MustRegister(stepDurationSeconds)
	registry.MustRegister(synthesisDurationSeconds)
	registry.MustRegister(baselineSamples)
	registry.MustRegister(synthesisBlocksTotal)
}

// RecordStep records one completed observation time step.
func RecordStep(d time.Duration) {
	timeStepsTotal.Inc()
	stepDurationSeconds.Observe(d.Seconds())
}

// RecordSynthesis records a completed image synthesis.
func RecordSynthesis(d time.Duration, samples, blocks int) {
	synthesisDurationSeconds.Observe(d.Seconds())
	baselineSamples.Set(float64(samples))
	synthesisBlocksTotal.Add(float64(blocks))
}

// Gatherer exposes the simulator's metric registry.
func Gatherer() prometheus.Gatherer {
	return registry
}

// WriteTextfile writes the current metric values to path in the format read
// by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
