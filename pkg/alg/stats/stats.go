// Package stats provides descriptive statistics for TIE sample sequences.
// Standard deviation is the population stddev (÷n, not ÷(n−1)).
package stats

import "math"

// Summary describes a sample sequence.
type Summary struct {
	Count      int     `json:"count"       yaml:"count"`
	Min        float64 `json:"min"         yaml:"min"`
	Max        float64 `json:"max"         yaml:"max"`
	Mean       float64 `json:"mean"        yaml:"mean"`
	StdDev     float64 `json:"stddev"      yaml:"stddev"`
	PeakToPeak float64 `json:"peak_to_peak" yaml:"peak_to_peak"`
}

// Summarize computes a Summary in one pass using Welford's update.
// Returns the zero Summary for an empty slice.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	lo, hi := values[0], values[0]

	var mean, m2 float64

	for i, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)

		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}

	count := len(values)

	return Summary{
		Count:      count,
		Min:        lo,
		Max:        hi,
		Mean:       mean,
		StdDev:     math.Sqrt(m2 / float64(count)),
		PeakToPeak: hi - lo,
	}
}
