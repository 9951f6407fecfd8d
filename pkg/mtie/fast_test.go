package mtie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFast_Constant(t *testing.T) {
	t.Parallel()

	got := Fast([]float64{1, 1, 1, 1})
	assert.Equal(t, Curve{{Interval: 1, MTIE: 0}, {Interval: 3, MTIE: 0}}, got)
}

func TestFast_Slope(t *testing.T) {
	t.Parallel()

	got := Fast([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	assert.Equal(t, Curve{
		{Interval: 1, MTIE: 1},
		{Interval: 3, MTIE: 3},
		{Interval: 7, MTIE: 7},
	}, got)
}

func TestFast_OutputSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n        int
		expected int
	}{
		{n: 0, expected: 0},
		{n: 1, expected: 0},
		{n: 2, expected: 1},
		{n: 3, expected: 1},
		{n: 4, expected: 2},
		{n: 7, expected: 2},
		{n: 8, expected: 3},
		{n: 1000, expected: 9},
		{n: 1 << 16, expected: 16},
	}

	for _, tt := range tests {
		got := Fast(make([]float64, tt.n))
		assert.Len(t, got, tt.expected, "n=%d", tt.n)
	}
}

func TestFast_DyadicIntervals(t *testing.T) {
	t.Parallel()

	got := Fast(randomWalk(100, 5))
	assert.Equal(t, []int{1, 3, 7, 15, 31, 63}, got.Intervals())
}

func TestFast_TwoSamples(t *testing.T) {
	t.Parallel()

	got := Fast([]float64{2.5, -1.5})
	assert.Equal(t, Curve{{Interval: 1, MTIE: 4}}, got)
}

// Complete seeds each interval with the previous one, so at tau it equals
// the largest max-min over windows of tau+1 samples, which is what the
// pyramid reports at tau = 2^k-1.
func TestFast_AgreesWithCompleteAtDyadicIntervals(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 5, 16, 17, 100, 1023, 1024, 1025} {
		input := randomWalk(n, uint64(n))

		complete, err := Complete(input)
		require.NoError(t, err)

		for _, p := range Fast(input) {
			assert.InDelta(t, complete[p.Interval-1].MTIE, p.MTIE, 1e-12, "n=%d tau=%d", n, p.Interval)
		}
	}
}

func TestFast_Monotonic(t *testing.T) {
	t.Parallel()

	curve := Fast(randomWalk(5000, 42))
	require.NoError(t, Validate(curve))

	for _, p := range curve {
		assert.GreaterOrEqual(t, p.MTIE, 0.0)
	}
}

func TestFast_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := randomWalk(64, 9)
	before := append([]float64(nil), input...)

	Fast(input)
	assert.Equal(t, before, input)
}

func TestPyramid_Advance(t *testing.T) {
	t.Parallel()

	levels := newPyramid([]float64{3, 1, 4, 1, 5, 9, 2, 6})
	assert.Equal(t, []float64{3, 4, 4, 5, 9, 9, 6}, levels.hi)
	assert.Equal(t, []float64{1, 1, 1, 1, 5, 2, 2}, levels.lo)

	levels.advance(2)
	assert.Equal(t, []float64{4, 5, 9, 9, 9}, levels.hi)
	assert.Equal(t, []float64{1, 1, 1, 1, 2}, levels.lo)

	levels.advance(3)
	assert.Equal(t, []float64{9}, levels.hi)
	assert.Equal(t, []float64{1}, levels.lo)
	assert.InDelta(t, 8.0, levels.maxSpread(), 0)
}
