package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal       = "mtie.runs.total"
	metricComputeDuration = "mtie.compute.duration.seconds"
	metricSamples         = "mtie.samples"
	metricParseWarnings   = "mtie.parse.warnings.total"

	attrAlgorithm = "algorithm"
	attrStatus    = "status"

	// StatusOK marks a run that produced a curve.
	StatusOK = "ok"
	// StatusError marks a run that failed.
	StatusError = "error"
)

// durationBucketBoundaries covers 100µs to 600s: the fast engine finishes
// large inputs in milliseconds while the complete engine is quadratic.
var durationBucketBoundaries = []float64{
	0.0001, 0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600,
}

// sampleBucketBoundaries covers single-digit inputs up to ten million samples.
var sampleBucketBoundaries = []float64{10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000}

// RunMetrics holds OTel instruments describing MTIE runs.
type RunMetrics struct {
	runsTotal       metric.Int64Counter
	computeDuration metric.Float64Histogram
	samples         metric.Int64Histogram
	parseWarnings   metric.Int64Counter
}

// NewRunMetrics creates run metric instruments from the given meter.
func NewRunMetrics(mt metric.Meter) (*RunMetrics, error) {
	runs, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Total MTIE computations by engine and outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricComputeDuration,
		metric.WithDescription("MTIE engine duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricComputeDuration, err)
	}

	samples, err := mt.Int64Histogram(metricSamples,
		metric.WithDescription("Number of TIE samples per run"),
		metric.WithUnit("{sample}"),
		metric.WithExplicitBucketBoundaries(sampleBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSamples, err)
	}

	warnings, err := mt.Int64Counter(metricParseWarnings,
		metric.WithDescription("Input lines ignored because they held no valid number"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricParseWarnings, err)
	}

	return &RunMetrics{
		runsTotal:       runs,
		computeDuration: duration,
		samples:         samples,
		parseWarnings:   warnings,
	}, nil
}

// RecordRun records a finished computation.
// Safe to call on a nil receiver (no-op).
func (rm *RunMetrics) RecordRun(ctx context.Context, algorithm, status string, samples int, duration time.Duration) {
	if rm == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrAlgorithm, algorithm),
		attribute.String(attrStatus, status),
	)

	rm.runsTotal.Add(ctx, 1, attrs)
	rm.computeDuration.Record(ctx, duration.Seconds(), attrs)
	rm.samples.Record(ctx, int64(samples), metric.WithAttributes(attribute.String(attrAlgorithm, algorithm)))
}

// RecordWarnings adds count ignored input lines.
// Safe to call on a nil receiver (no-op).
func (rm *RunMetrics) RecordWarnings(ctx context.Context, count int) {
	if rm == nil || count <= 0 {
		return
	}

	rm.parseWarnings.Add(ctx, int64(count))
}
