package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/mtie/pkg/alg/stats"
	"github.com/Sumatoshi-tech/mtie/pkg/config"
	"github.com/Sumatoshi-tech/mtie/pkg/mtie"
	"github.com/Sumatoshi-tech/mtie/pkg/observability"
	"github.com/Sumatoshi-tech/mtie/pkg/render"
	"github.com/Sumatoshi-tech/mtie/pkg/tie"
	"github.com/Sumatoshi-tech/mtie/pkg/version"
)

const (
	spanParse   = "mtie.parse"
	spanCompute = "mtie.compute"

	envOTLPHeaders = "OTEL_EXPORTER_OTLP_HEADERS"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitDefect reports an internal consistency failure in an engine.
	ExitDefect = 2
)

// RunCommand holds flag values and dependencies for one MTIE run.
type RunCommand struct {
	inputPath    string
	configPath   string
	algorithm    string
	threshold    int
	workers      int
	format       string
	maxInputSize string
	verbose      bool
	quiet        bool
	logJSON      bool
	noColor      bool
	metricsFile  string

	initObs observabilityInit
}

// runEnv bundles what each stage of a run needs.
type runEnv struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics *observability.RunMetrics
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, mtie.ErrNotMonotonic):
		return ExitDefect
	default:
		return ExitFailure
	}
}

func (rc *RunCommand) run(cmd *cobra.Command, _ []string) error {
	if rc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := rc.loadConfig(cmd)
	if err != nil {
		return err
	}

	obsCfg, err := observabilityConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	providers, err := rc.initObs(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	metrics, err := observability.NewRunMetrics(providers.Meter)
	if err != nil {
		return err
	}

	env := runEnv{tracer: providers.Tracer, logger: providers.Logger, metrics: metrics}
	ctx := cmd.Context()

	maxSize, err := cfg.MaxInputBytes()
	if err != nil {
		return err
	}

	src := tie.Source{Path: rc.inputPath, Stdin: cmd.InOrStdin(), MaxSize: maxSize}

	data, err := env.parse(ctx, src)
	if err != nil {
		return err
	}

	summary := stats.Summarize(data.Samples)

	result, err := env.compute(ctx, cfg.Selector(), cfg.Algorithm(), data.Samples)
	if err != nil {
		return err
	}

	env.logger.DebugContext(ctx, "input summary",
		"source", src.Name(),
		"lines", humanize.Comma(int64(data.Lines)),
		"min", summary.Min,
		"max", summary.Max,
		"mean", summary.Mean,
		"stddev", summary.StdDev,
	)

	writeErr := render.Write(cmd.OutOrStdout(), cfg.Output.Format, render.NewReport(result, &summary))
	if writeErr != nil {
		return writeErr
	}

	if obsCfg.MetricsRegistry != nil {
		return observability.WriteTextfile(cfg.Telemetry.MetricsFile, obsCfg.MetricsRegistry)
	}

	return nil
}

// loadConfig reads the config file and environment, then applies flags the
// user set explicitly.
func (rc *RunCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("algorithm") {
		cfg.Engine.Algorithm = rc.algorithm
	}

	if flags.Changed("threshold") {
		cfg.Engine.Threshold = rc.threshold
	}

	if flags.Changed("workers") {
		cfg.Engine.Workers = rc.workers
	}

	if flags.Changed("format") {
		cfg.Output.Format = rc.format
	}

	if flags.Changed("max-input-size") {
		cfg.Input.MaxSize = rc.maxInputSize
	}

	if flags.Changed("log-json") {
		cfg.Logging.JSON = rc.logJSON
	}

	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = rc.metricsFile
	}

	switch {
	case rc.verbose:
		cfg.Logging.Level = "debug"
	case rc.quiet:
		cfg.Logging.Level = "error"
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid flags: %w", validateErr)
	}

	return cfg, nil
}

func observabilityConfig(cfg *config.Config, logWriter io.Writer) (observability.Config, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return observability.Config{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv(envOTLPHeaders))
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.LogWriter = logWriter

	if cfg.Telemetry.MetricsFile != "" {
		obsCfg.MetricsRegistry = observability.NewMetricsRegistry()
	}

	return obsCfg, nil
}

func (env runEnv) parse(ctx context.Context, src tie.Source) (tie.Data, error) {
	ctx, span := env.tracer.Start(ctx, spanParse, trace.WithAttributes(
		attribute.String("mtie.source", src.Name()),
	))
	defer span.End()

	data, err := tie.Load(src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return tie.Data{}, err
	}

	for _, w := range data.Warnings {
		env.logger.WarnContext(ctx, w.String(), "line", w.Line)
	}

	env.metrics.RecordWarnings(ctx, len(data.Warnings))

	span.SetAttributes(
		attribute.Int("mtie.samples", len(data.Samples)),
		attribute.Int("mtie.warnings", len(data.Warnings)),
	)

	return data, nil
}

func (env runEnv) compute(
	ctx context.Context, sel mtie.Selector, algo mtie.Algorithm, samples []float64,
) (mtie.Result, error) {
	engine := algo
	if engine == mtie.AlgorithmAuto {
		engine = sel.Choose(len(samples))
	}

	ctx, span := env.tracer.Start(ctx, spanCompute, trace.WithAttributes(
		attribute.String("mtie.algorithm", string(engine)),
		attribute.Int("mtie.samples", len(samples)),
		attribute.Int("mtie.workers", sel.Workers),
	))
	defer span.End()

	start := time.Now()
	result, err := sel.Compute(ctx, samples, engine)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		env.metrics.RecordRun(ctx, string(engine), observability.StatusError, len(samples), elapsed)

		return mtie.Result{}, err
	}

	env.metrics.RecordRun(ctx, string(engine), observability.StatusOK, len(samples), elapsed)
	span.SetAttributes(attribute.Int("mtie.intervals", len(result.Curve)))

	env.logger.DebugContext(ctx, "mtie computed",
		"algorithm", result.Algorithm,
		"samples", humanize.Comma(int64(result.Samples)),
		"intervals", len(result.Curve),
		"duration", elapsed,
	)

	return result, nil
}
