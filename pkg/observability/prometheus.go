package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// NewMetricsRegistry creates an isolated Prometheus registry for one run.
// Pass it as Config.MetricsRegistry and dump it with WriteTextfile.
func NewMetricsRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// WriteTextfile writes every metric in gatherer to path in the Prometheus
// text exposition format, as expected by the node_exporter textfile collector.
// The file is written atomically.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	err := prometheus.WriteToTextfile(path, gatherer)
	if err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	return nil
}
