package mtie

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxCompleteSamples is the largest input Complete accepts. Beyond it the
// O(n²) scan takes too long to be useful.
const MaxCompleteSamples = 100_000

// Complete returns the exact MTIE for every interval 1..N-1.
//
// Each interval's value is seeded with the previous interval's value, so the
// curve is non-decreasing by construction. Inputs of zero or one sample give
// an empty curve. Inputs larger than MaxCompleteSamples fail with
// *SizeExceededError before any work is done.
func Complete(samples []float64) (Curve, error) {
	count := len(samples)

	ceilingErr := checkCeiling(count)
	if ceilingErr != nil {
		return nil, ceilingErr
	}

	if count <= 1 {
		return Curve{}, nil
	}

	curve := make(Curve, 0, count-1)

	var prev float64

	for tau := 1; tau < count; tau++ {
		maximum := max(prev, maxDifference(samples, tau))
		curve = append(curve, Pair{Interval: tau, MTIE: maximum})
		prev = maximum
	}

	return curve, nil
}

// CompleteParallel is Complete with the per-interval scans spread over
// workers goroutines. Zero workers means runtime.GOMAXPROCS(0).
// The result is identical to Complete.
func CompleteParallel(ctx context.Context, samples []float64, workers int) (Curve, error) {
	if workers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}

	count := len(samples)

	ceilingErr := checkCeiling(count)
	if ceilingErr != nil {
		return nil, ceilingErr
	}

	if count <= 1 {
		return Curve{}, nil
	}

	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	workers = min(workers, count-1)

	// raw[tau] holds the unseeded maximum for that interval; index 0 is unused.
	raw := make([]float64, count)

	group, groupCtx := errgroup.WithContext(ctx)

	for worker := range workers {
		group.Go(func() error {
			// Strided assignment keeps the long small-tau scans spread evenly.
			for tau := 1 + worker; tau < count; tau += workers {
				ctxErr := groupCtx.Err()
				if ctxErr != nil {
					return fmt.Errorf("complete mtie: %w", ctxErr)
				}

				raw[tau] = maxDifference(samples, tau)
			}

			return nil
		})
	}

	waitErr := group.Wait()
	if waitErr != nil {
		return nil, waitErr
	}

	curve := make(Curve, 0, count-1)

	var prev float64

	for tau := 1; tau < count; tau++ {
		prev = max(prev, raw[tau])
		curve = append(curve, Pair{Interval: tau, MTIE: prev})
	}

	return curve, nil
}

func checkCeiling(count int) error {
	if count > MaxCompleteSamples {
		return &SizeExceededError{Ceiling: MaxCompleteSamples, Actual: count}
	}

	return nil
}

// maxDifference returns max |s[i+tau] - s[i]| over every start i.
func maxDifference(samples []float64, tau int) float64 {
	var maximum float64

	for start := 0; start+tau < len(samples); start++ {
		diff := math.Abs(samples[start+tau] - samples[start])
		if diff > maximum {
			maximum = diff
		}
	}

	return maximum
}
