package mtie

import "github.com/Sumatoshi-tech/mtie/pkg/safeconv"

// Fast returns MTIE at the dyadic intervals 2^k-1 for k = 1..floor(log2(N)).
//
// It builds the min/max doubling pyramid from "Fast Algorithms for TVAR and
// MTIE Computation in Characterization of Network Synchronization
// Performance": level k holds the max and min of every window of 2^k samples
// and is derived from level k-1 alone. Only one level is kept at a time, so
// memory is O(n) while time is O(n log n).
//
// Fast is not a replacement for arbitrary-interval queries; it yields a
// representative curve across scales. Inputs of zero or one sample give an
// empty curve.
func Fast(samples []float64) Curve {
	kMax := safeconv.Log2Floor(len(samples))
	curve := make(Curve, 0, kMax)

	if kMax == 0 {
		return curve
	}

	levels := newPyramid(samples)

	for k := 1; k <= kMax; k++ {
		if k > 1 {
			levels.advance(k)
		}

		curve = append(curve, Pair{
			Interval: safeconv.MustPow2(k) - 1,
			MTIE:     levels.maxSpread(),
		})
	}

	return curve
}

// pyramid is the current level of the doubling structure. hi[i] and lo[i]
// are the max and min of the window of size 2^k starting at sample i.
type pyramid struct {
	hi []float64
	lo []float64
}

// newPyramid builds level 1: windows of two adjacent samples.
func newPyramid(samples []float64) *pyramid {
	windows := len(samples) - 1
	levels := &pyramid{
		hi: make([]float64, windows),
		lo: make([]float64, windows),
	}

	for i := range windows {
		levels.hi[i] = max(samples[i], samples[i+1])
		levels.lo[i] = min(samples[i], samples[i+1])
	}

	return levels
}

// advance turns level k-1 into level k in place. Window i at level k is the
// union of windows i and i+2^(k-1) at level k-1; ascending i reads i+offset
// before it is overwritten.
func (p *pyramid) advance(k int) {
	offset := safeconv.MustPow2(k - 1)
	windows := len(p.hi) - offset

	for i := range windows {
		p.hi[i] = max(p.hi[i], p.hi[i+offset])
		p.lo[i] = min(p.lo[i], p.lo[i+offset])
	}

	p.hi = p.hi[:windows]
	p.lo = p.lo[:windows]
}

// maxSpread returns the largest hi-lo over the windows of the current level.
func (p *pyramid) maxSpread() float64 {
	spread := p.hi[0] - p.lo[0]

	for i := 1; i < len(p.hi); i++ {
		spread = max(spread, p.hi[i]-p.lo[i])
	}

	return spread
}
