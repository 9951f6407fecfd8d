package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".mtie"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for mtie settings.
const envPrefix = "MTIE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// otlpEndpointEnv is the standard OTel collector address variable.
const otlpEndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	bindErr := viperCfg.BindEnv("telemetry.otlp_endpoint", envPrefix+"_TELEMETRY_OTLP_ENDPOINT", otlpEndpointEnv)
	if bindErr != nil {
		return nil, fmt.Errorf("bind env: %w", bindErr)
	}

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or env var is present.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Algorithm: DefaultEngineAlgorithm,
			Threshold: DefaultEngineThreshold,
			Workers:   DefaultEngineWorkers,
		},
		Input:  InputConfig{MaxSize: DefaultInputMaxSize},
		Output: OutputConfig{Format: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level: DefaultLoggingLevel,
			JSON:  DefaultLoggingJSON,
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: DefaultTelemetryOTLPEndpoint,
			OTLPInsecure: DefaultTelemetryOTLPInsecure,
			MetricsFile:  DefaultTelemetryMetricsFile,
		},
	}
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("engine.algorithm", DefaultEngineAlgorithm)
	viperCfg.SetDefault("engine.threshold", DefaultEngineThreshold)
	viperCfg.SetDefault("engine.workers", DefaultEngineWorkers)

	viperCfg.SetDefault("input.max_size", DefaultInputMaxSize)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.json", DefaultLoggingJSON)

	viperCfg.SetDefault("telemetry.otlp_endpoint", DefaultTelemetryOTLPEndpoint)
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultTelemetryOTLPInsecure)
	viperCfg.SetDefault("telemetry.metrics_file", DefaultTelemetryMetricsFile)
}
