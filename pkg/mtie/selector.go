package mtie

import (
	"context"
	"fmt"
)

// DefaultThreshold is the sample count up to which the complete engine is used.
const DefaultThreshold = MaxCompleteSamples

// Selector chooses an engine by sample count and validates its output.
// The zero value uses DefaultThreshold and runtime.GOMAXPROCS(0) workers.
type Selector struct {
	// Threshold is the largest sample count routed to the complete engine.
	// Values above MaxCompleteSamples are capped to it.
	Threshold int

	// Workers is the goroutine count for the complete engine.
	// One runs it sequentially; zero means runtime.GOMAXPROCS(0).
	Workers int
}

// NewSelector returns a sequential selector with the default threshold.
func NewSelector() Selector {
	return Selector{Threshold: DefaultThreshold, Workers: 1}
}

// Choose returns the engine used for n samples.
func (s Selector) Choose(n int) Algorithm {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	if n <= min(threshold, MaxCompleteSamples) {
		return AlgorithmComplete
	}

	return AlgorithmFast
}

// Compute runs algo over samples, or the chosen engine when algo is empty or
// AlgorithmAuto, then validates the curve. Forcing AlgorithmComplete on an
// oversized input returns *SizeExceededError; a decreasing curve returns
// *MonotonicityError.
func (s Selector) Compute(ctx context.Context, samples []float64, algo Algorithm) (Result, error) {
	if algo == "" || algo == AlgorithmAuto {
		algo = s.Choose(len(samples))
	}

	var (
		curve Curve
		err   error
	)

	switch algo {
	case AlgorithmComplete:
		curve, err = s.complete(ctx, samples)
	case AlgorithmFast:
		curve = Fast(samples)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}

	if err != nil {
		return Result{}, err
	}

	validateErr := Validate(curve)
	if validateErr != nil {
		return Result{}, fmt.Errorf("%s engine: %w", algo, validateErr)
	}

	return Result{Algorithm: algo, Samples: len(samples), Curve: curve}, nil
}

func (s Selector) complete(ctx context.Context, samples []float64) (Curve, error) {
	if s.Workers == 1 {
		return Complete(samples)
	}

	return CompleteParallel(ctx, samples, s.Workers)
}

// Compute returns the MTIE curve for samples using NewSelector.
func Compute(samples []float64) (Curve, error) {
	result, err := NewSelector().Compute(context.Background(), samples, AlgorithmAuto)
	if err != nil {
		return nil, err
	}

	return result.Curve, nil
}
