package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/mtie/pkg/observability"
)

func setupTestMeter(t *testing.T) (*observability.RunMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := mp.Meter("test")

	run, err := observability.NewRunMetrics(meter)
	require.NoError(t, err)

	return run, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestRunMetrics_RecordRun(t *testing.T) {
	t.Parallel()

	run, reader := setupTestMeter(t)
	ctx := context.Background()

	run.RecordRun(ctx, "complete", observability.StatusOK, 1000, 20*time.Millisecond)
	run.RecordRun(ctx, "fast", observability.StatusOK, 500_000, time.Millisecond)

	rm := collectMetrics(t, reader)

	runs := findMetric(rm, "mtie.runs.total")
	require.NotNil(t, runs, "mtie.runs.total metric not found")

	sum, ok := runs.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, sum.DataPoints, 2)

	duration := findMetric(rm, "mtie.compute.duration.seconds")
	require.NotNil(t, duration, "mtie.compute.duration.seconds metric not found")

	samples := findMetric(rm, "mtie.samples")
	require.NotNil(t, samples, "mtie.samples metric not found")

	hist, ok := samples.Data.(metricdata.Histogram[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range hist.DataPoints {
		total += dp.Sum
	}

	assert.Equal(t, int64(501_000), total)
}

func TestRunMetrics_RecordWarnings(t *testing.T) {
	t.Parallel()

	run, reader := setupTestMeter(t)
	ctx := context.Background()

	run.RecordWarnings(ctx, 0)
	run.RecordWarnings(ctx, 2)
	run.RecordWarnings(ctx, 1)

	rm := collectMetrics(t, reader)

	warnings := findMetric(rm, "mtie.parse.warnings.total")
	require.NotNil(t, warnings)

	sum, ok := warnings.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
}

func TestRunMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var run *observability.RunMetrics

	assert.NotPanics(t, func() {
		run.RecordRun(context.Background(), "fast", observability.StatusError, 1, time.Second)
		run.RecordWarnings(context.Background(), 4)
	})
}

func TestNewRunMetrics_WithNoopMeter(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	run, err := observability.NewRunMetrics(providers.Meter)
	require.NoError(t, err)
	assert.NotNil(t, run)

	run.RecordRun(context.Background(), "complete", observability.StatusOK, 3, time.Millisecond)
}
