// Package commands implements CLI command handlers for mtie.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/mtie/pkg/mtie"
	"github.com/Sumatoshi-tech/mtie/pkg/observability"
	"github.com/Sumatoshi-tech/mtie/pkg/render"
	"github.com/Sumatoshi-tech/mtie/pkg/version"
)

type observabilityInit func(cfg observability.Config) (observability.Providers, error)

const rootLong = `Calculates MTIE from a series of TIE input data.

Input is read from the file given with --input, or from standard input.
Each line holds one TIE sample; blank lines and lines starting with '#' or
'//' are ignored. Files ending in .lz4 are decompressed on the fly.

Output is one "<interval> <mtie>" pair per line, where the interval is
measured in samples. Inputs up to the complete engine threshold get an exact
value for every interval; larger inputs use the fast engine, which reports
intervals of 2^k-1 samples only.`

// NewRootCommand creates the mtie root command.
func NewRootCommand() *cobra.Command {
	return newRootCommandWithDeps(observability.Init)
}

func newRootCommandWithDeps(initObs observabilityInit) *cobra.Command {
	rc := &RunCommand{initObs: initObs}

	cmd := &cobra.Command{
		Use:           "mtie",
		Short:         "Calculate MTIE from TIE samples",
		Long:          rootLong,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.Flags().StringVarP(&rc.inputPath, "input", "i", "", "TIE input file (default: standard input)")
	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file (default: .mtie.yaml in the working directory or $HOME)")
	cmd.Flags().StringVarP(&rc.algorithm, "algorithm", "a", string(mtie.AlgorithmAuto),
		fmt.Sprintf("MTIE engine: %s, %s, %s", mtie.AlgorithmAuto, mtie.AlgorithmComplete, mtie.AlgorithmFast))
	cmd.Flags().IntVar(&rc.threshold, "threshold", mtie.DefaultThreshold,
		"Largest input handled by the complete engine in auto mode")
	cmd.Flags().IntVar(&rc.workers, "workers", 1, "Complete engine workers (0 = use CPU count)")
	cmd.Flags().StringVarP(&rc.format, "format", "f", render.FormatText, "Output format: text, json, yaml, table")
	cmd.Flags().StringVar(&rc.maxInputSize, "max-input-size", "", "Reject inputs larger than this (e.g. '64MiB'; empty = unlimited)")
	cmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false, "Log debug details to stderr")
	cmd.Flags().BoolVarP(&rc.quiet, "quiet", "q", false, "Log errors only")
	cmd.Flags().BoolVar(&rc.logJSON, "log-json", false, "Emit JSON logs")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored error output")
	cmd.Flags().StringVar(&rc.metricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
