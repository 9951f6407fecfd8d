package mtie

import (
	"fmt"
	"slices"
)

// Algorithm names an MTIE engine.
type Algorithm string

// Supported algorithms.
const (
	// AlgorithmAuto lets the Selector choose by sample count.
	AlgorithmAuto Algorithm = "auto"
	// AlgorithmComplete is the exact O(n²) engine.
	AlgorithmComplete Algorithm = "complete"
	// AlgorithmFast is the O(n log n) dyadic pyramid engine.
	AlgorithmFast Algorithm = "fast"
)

// Algorithms lists every accepted algorithm name.
var Algorithms = []Algorithm{AlgorithmAuto, AlgorithmComplete, AlgorithmFast}

// ParseAlgorithm converts a name into an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	algo := Algorithm(name)
	if !slices.Contains(Algorithms, algo) {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}

	return algo, nil
}

// Pair is the MTIE value observed over one interval.
type Pair struct {
	// Interval is the window length in sample spacings.
	Interval int `json:"interval" yaml:"interval"`
	// MTIE is the worst peak-to-peak excursion over all windows of that length.
	MTIE float64 `json:"mtie" yaml:"mtie"`
}

// Curve is a sequence of pairs ordered by increasing interval.
type Curve []Pair

// Intervals returns the interval column of the curve.
func (c Curve) Intervals() []int {
	out := make([]int, len(c))
	for i, p := range c {
		out[i] = p.Interval
	}

	return out
}

// Values returns the MTIE column of the curve.
func (c Curve) Values() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.MTIE
	}

	return out
}

// Result is a validated curve together with how it was produced.
type Result struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	Samples   int       `json:"samples"   yaml:"samples"`
	Curve     Curve     `json:"curve"     yaml:"curve"`
}
