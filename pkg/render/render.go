// Package render writes MTIE curves in the supported output formats.
package render

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/mtie/pkg/alg/stats"
	"github.com/Sumatoshi-tech/mtie/pkg/mtie"
)

// Output formats.
const (
	// FormatText writes "<interval> <mtie>" per line.
	FormatText = "text"
	// FormatJSON writes an indented JSON document.
	FormatJSON = "json"
	// FormatYAML writes a YAML document.
	FormatYAML = "yaml"
	// FormatTable writes a human-readable table.
	FormatTable = "table"
)

const (
	jsonIndent = "  "
	yamlIndent = 2
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTable}

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Report is everything a renderer may show.
type Report struct {
	Algorithm mtie.Algorithm `json:"algorithm"         yaml:"algorithm"`
	Samples   int            `json:"samples"           yaml:"samples"`
	Summary   *stats.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Curve     mtie.Curve     `json:"curve"             yaml:"curve"`
}

// NewReport builds a Report from an engine result.
func NewReport(result mtie.Result, summary *stats.Summary) Report {
	return Report{
		Algorithm: result.Algorithm,
		Samples:   result.Samples,
		Summary:   summary,
		Curve:     result.Curve,
	}
}

// Write renders report to w in format.
func Write(w io.Writer, format string, report Report) error {
	if report.Curve == nil {
		report.Curve = mtie.Curve{}
	}

	switch format {
	case FormatText:
		return writeText(w, report.Curve)
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatTable:
		return writeTable(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatValue renders an MTIE value in the shortest form that round-trips.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeText(w io.Writer, curve mtie.Curve) error {
	buf := bufio.NewWriter(w)

	for _, p := range curve {
		_, err := fmt.Fprintf(buf, "%d %s\n", p.Interval, FormatValue(p.MTIE))
		if err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}

	flushErr := buf.Flush()
	if flushErr != nil {
		return fmt.Errorf("write text: %w", flushErr)
	}

	return nil
}

func writeJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, report Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}

	closeErr := enc.Close()
	if closeErr != nil {
		return fmt.Errorf("write yaml: %w", closeErr)
	}

	return nil
}

func writeTable(w io.Writer, report Report) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"Interval", "MTIE"})

	for _, p := range report.Curve {
		tbl.AppendRow(table.Row{p.Interval, FormatValue(p.MTIE)})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d samples", report.Samples),
		string(report.Algorithm),
	})

	tbl.Render()

	return nil
}
