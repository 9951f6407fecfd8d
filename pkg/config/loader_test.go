package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/mtie/pkg/config"
)

const (
	testThreshold = 5000
	testWorkers   = 4
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, "empty.yaml", ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.DefaultEngineAlgorithm, cfg.Engine.Algorithm)
	assert.Equal(t, config.DefaultEngineThreshold, cfg.Engine.Threshold)
	assert.Equal(t, config.DefaultEngineWorkers, cfg.Engine.Workers)
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.Format)
	assert.Equal(t, config.DefaultLoggingLevel, cfg.Logging.Level)
	assert.Empty(t, cfg.Telemetry.MetricsFile)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	content := `engine:
  algorithm: fast
  threshold: 5000
  workers: 4
input:
  max_size: "64MiB"
output:
  format: json
logging:
  level: debug
  json: true
telemetry:
  otlp_endpoint: "collector:4317"
  otlp_insecure: true
  metrics_file: "/var/lib/node_exporter/mtie.prom"
`

	cfg, err := config.LoadConfig(writeConfig(t, ".mtie.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, "fast", cfg.Engine.Algorithm)
	assert.Equal(t, testThreshold, cfg.Engine.Threshold)
	assert.Equal(t, testWorkers, cfg.Engine.Workers)
	assert.Equal(t, "64MiB", cfg.Input.MaxSize)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "collector:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.Equal(t, "/var/lib/node_exporter/mtie.prom", cfg.Telemetry.MetricsFile)

	size, sizeErr := cfg.MaxInputBytes()
	require.NoError(t, sizeErr)
	assert.Equal(t, uint64(64<<20), size)
}

func TestLoadConfig_InvalidValues_ReturnsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "algorithm", content: "engine:\n  algorithm: quadratic\n", want: config.ErrInvalidAlgorithm},
		{name: "threshold_zero", content: "engine:\n  threshold: 0\n", want: config.ErrInvalidThreshold},
		{name: "threshold_above_ceiling", content: "engine:\n  threshold: 100001\n", want: config.ErrInvalidThreshold},
		{name: "workers", content: "engine:\n  workers: -2\n", want: config.ErrInvalidWorkers},
		{name: "format", content: "output:\n  format: xml\n", want: config.ErrInvalidFormat},
		{name: "log_level", content: "logging:\n  level: loud\n", want: config.ErrInvalidLogLevel},
		{name: "max_size", content: "input:\n  max_size: lots\n", want: config.ErrInvalidMaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.LoadConfig(writeConfig(t, "bad.yaml", tt.content))
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestLoadConfig_MalformedYAML_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, "bad.yaml", "engine:\n  workers: [invalid yaml\n"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_UnknownKeys_NoError(t *testing.T) {
	t.Parallel()

	content := `unknown_section:
  unknown_key: "value"
engine:
  workers: 2
`

	cfg, err := config.LoadConfig(writeConfig(t, ".mtie.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Engine.Workers)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MTIE_ENGINE_ALGORITHM", "complete")
	t.Setenv("MTIE_OUTPUT_FORMAT", "yaml")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")

	cfg, err := config.LoadConfig(writeConfig(t, ".mtie.yaml", "engine:\n  algorithm: fast\n"))
	require.NoError(t, err)

	assert.Equal(t, "complete", cfg.Engine.Algorithm)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "otel:4317", cfg.Telemetry.OTLPEndpoint)
}
