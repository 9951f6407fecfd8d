// Package config provides YAML and environment configuration for mtie.
package config

import "github.com/Sumatoshi-tech/mtie/pkg/mtie"

// Engine defaults.
const (
	DefaultEngineAlgorithm = string(mtie.AlgorithmAuto)
	DefaultEngineThreshold = mtie.DefaultThreshold
	DefaultEngineWorkers   = 1
)

// Input defaults.
const (
	DefaultInputMaxSize = ""
)

// Output defaults.
const (
	DefaultOutputFormat = "text"
)

// Logging defaults.
const (
	DefaultLoggingLevel = "info"
	DefaultLoggingJSON  = false
)

// Telemetry defaults.
const (
	DefaultTelemetryOTLPEndpoint = ""
	DefaultTelemetryOTLPInsecure = false
	DefaultTelemetryMetricsFile  = ""
)
