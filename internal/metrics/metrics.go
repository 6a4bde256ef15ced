// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records Prometheus counters for comparisons. A CLI run
// registers them on a private registry and may write it to a node
// exporter textfile when the run ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/swcompare/pkg/types"
)

const namespace = "swcompare"

// Metrics holds the comparison collectors. All methods are safe for
// concurrent use.
type Metrics struct {
	// Comparisons counts finished comparisons.
	// Labels: kind (solidworks, general, unknown), category.
	Comparisons *prometheus.CounterVec

	// Degraded counts comparisons that used a fallback sub-score.
	// Labels: kind.
	Degraded *prometheus.CounterVec

	// Duration measures wall time per comparison.
	// Labels: kind.
	Duration *prometheus.HistogramVec

	// Manipulations counts pairs flagged by the detector.
	// Labels: type.
	Manipulations *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Comparisons: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Comparisons by file kind and category.",
		}, []string{"kind", "category"}),
		Degraded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparison_degraded_total",
			Help:      "Comparisons that fell back to a default sub-score.",
		}, []string{"kind"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "comparison_duration_seconds",
			Help:      "Wall time of one pair comparison.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"kind"}),
		Manipulations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manipulations_detected_total",
			Help:      "Pairs flagged as manipulated, by suspected type.",
		}, []string{"type"}),
	}
}

// Observe records one finished comparison.
func (m *Metrics) Observe(r types.ComparisonResult, elapsed time.Duration) {
	kind := string(r.FileKind)
	m.Comparisons.WithLabelValues(kind, string(r.Category)).Inc()
	m.Duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if r.Degraded {
		m.Degraded.WithLabelValues(kind).Inc()
	}
	if r.Manipulation.Detected {
		m.Manipulations.WithLabelValues(string(r.Manipulation.Kind)).Inc()
	}
}

// WriteTextfile writes every metric in g to path in the text exposition
// format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
