package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/mtie/pkg/mtie"
	"github.com/Sumatoshi-tech/mtie/pkg/render"
)

// Config is the top-level configuration struct for mtie.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// EngineConfig selects and tunes the MTIE engine.
type EngineConfig struct {
	Algorithm string `mapstructure:"algorithm"`
	Threshold int    `mapstructure:"threshold"`
	Workers   int    `mapstructure:"workers"`
}

// InputConfig bounds what is read.
type InputConfig struct {
	// MaxSize is a humanized byte size such as "64MiB"; empty is unlimited.
	MaxSize string `mapstructure:"max_size"`
}

// OutputConfig selects the result format.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry and Prometheus export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	MetricsFile  string `mapstructure:"metrics_file"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidAlgorithm indicates an unknown engine.algorithm.
	ErrInvalidAlgorithm = errors.New("engine.algorithm must be one of auto, complete, fast")
	// ErrInvalidThreshold indicates engine.threshold is outside 1..100000.
	ErrInvalidThreshold = errors.New("engine.threshold must be between 1 and the complete engine ceiling")
	// ErrInvalidWorkers indicates engine.workers is negative.
	ErrInvalidWorkers = errors.New("engine.workers must be non-negative")
	// ErrInvalidFormat indicates an unknown output.format.
	ErrInvalidFormat = errors.New("output.format is not supported")
	// ErrInvalidLogLevel indicates an unknown logging.level.
	ErrInvalidLogLevel = errors.New("logging.level must be one of debug, info, warn, error")
	// ErrInvalidMaxSize indicates input.max_size is not a byte size.
	ErrInvalidMaxSize = errors.New("input.max_size must be a byte size such as 64MiB")
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	engineErr := c.validateEngine()
	if engineErr != nil {
		return engineErr
	}

	if !slices.Contains(render.Formats, c.Output.Format) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrInvalidFormat, c.Output.Format, render.Formats)
	}

	_, levelErr := c.LogLevel()
	if levelErr != nil {
		return levelErr
	}

	_, sizeErr := c.MaxInputBytes()

	return sizeErr
}

func (c *Config) validateEngine() error {
	_, algoErr := mtie.ParseAlgorithm(c.Engine.Algorithm)
	if algoErr != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAlgorithm, c.Engine.Algorithm)
	}

	if c.Engine.Threshold < 1 || c.Engine.Threshold > mtie.MaxCompleteSamples {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, c.Engine.Threshold)
	}

	if c.Engine.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Engine.Workers)
	}

	return nil
}

// Algorithm returns the configured engine.
func (c *Config) Algorithm() mtie.Algorithm {
	return mtie.Algorithm(c.Engine.Algorithm)
}

// Selector returns the engine selector described by the config.
func (c *Config) Selector() mtie.Selector {
	return mtie.Selector{Threshold: c.Engine.Threshold, Workers: c.Engine.Workers}
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	level, ok := logLevels[strings.ToLower(c.Logging.Level)]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return level, nil
}

// MaxInputBytes parses input.max_size. Zero means unlimited.
func (c *Config) MaxInputBytes() (uint64, error) {
	trimmed := strings.TrimSpace(c.Input.MaxSize)
	if trimmed == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMaxSize, c.Input.MaxSize, err)
	}

	return size, nil
}
