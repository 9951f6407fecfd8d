// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for the mtie command line tool.
package observability

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// AppMode identifies the application execution mode.
type AppMode string

// ModeCLI is the CLI command execution mode.
const ModeCLI AppMode = "cli"

const (
	// defaultServiceName is the default OTel service name.
	defaultServiceName = "mtie"

	// defaultShutdownTimeoutSec is the default shutdown timeout in seconds.
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables OTLP export.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// LogWriter receives log records. Nil means os.Stderr.
	LogWriter io.Writer

	// MetricsRegistry, when set, receives every OTel instrument through the
	// Prometheus exporter so runs can be dumped to a textfile.
	MetricsRegistry *prometheus.Registry

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config with sensible defaults for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
