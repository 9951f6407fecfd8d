// Package tie reads Time Interval Error samples from text input.
//
// The format is one floating-point number per line. Surrounding whitespace is
// ignored, as are blank lines and comment lines starting with "#" or "//".
// Lines that do not hold a finite number are skipped and reported as
// warnings; they never abort a read.
package tie

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = humanize.MiByte

// Comment prefixes.
const (
	commentHash  = "#"
	commentSlash = "//"
)

// ErrScan is returned when the underlying reader fails mid-stream.
var ErrScan = errors.New("read TIE input")

// Warning describes a line that was skipped.
type Warning struct {
	// Line is the 1-based line number.
	Line int
	// Text is the raw line without its terminator.
	Text string
}

func (w Warning) String() string {
	return fmt.Sprintf("Ignoring line %d '%s': it does not contain a valid number", w.Line, w.Text)
}

// Data is the result of parsing one input.
type Data struct {
	Samples  []float64
	Warnings []Warning
	// Lines is the number of lines read, including skipped ones.
	Lines int
}

// Parse reads samples from r until EOF.
func Parse(r io.Reader) (Data, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	data := Data{Samples: []float64{}}

	for scanner.Scan() {
		data.Lines++

		raw := strings.TrimSuffix(scanner.Text(), "\r")

		value, ok, skip := parseLine(raw)
		if skip {
			continue
		}

		if !ok {
			data.Warnings = append(data.Warnings, Warning{Line: data.Lines, Text: raw})

			continue
		}

		data.Samples = append(data.Samples, value)
	}

	scanErr := scanner.Err()
	if scanErr != nil {
		return data, fmt.Errorf("%w after line %d: %w", ErrScan, data.Lines, scanErr)
	}

	return data, nil
}

// parseLine returns the value on a line, whether it parsed, and whether the
// line is blank or a comment.
func parseLine(raw string) (value float64, ok, skip bool) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" || strings.HasPrefix(trimmed, commentHash) || strings.HasPrefix(trimmed, commentSlash) {
		return 0, false, true
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false, false
	}

	return value, true, false
}
