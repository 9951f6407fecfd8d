package mtie

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrSizeExceeded is matched by *SizeExceededError.
	ErrSizeExceeded = errors.New("data set is too large for the complete MTIE algorithm")
	// ErrNotMonotonic is matched by *MonotonicityError.
	ErrNotMonotonic = errors.New("MTIE is not monotonically increasing")
	// ErrUnknownAlgorithm is returned for an unrecognized algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown MTIE algorithm")
	// ErrInvalidWorkers is returned for a negative worker count.
	ErrInvalidWorkers = errors.New("worker count must not be negative")
)

// SizeExceededError reports an input too large for the O(n²) engine.
// The caller can retry with Fast.
type SizeExceededError struct {
	Ceiling int
	Actual  int
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf(
		"%v: will not process more than %d samples, got %d",
		ErrSizeExceeded, e.Ceiling, e.Actual,
	)
}

// Is reports whether target is ErrSizeExceeded.
func (e *SizeExceededError) Is(target error) bool {
	return target == ErrSizeExceeded
}

// MonotonicityError reports a curve whose MTIE decreases between Index and
// Index+1. It signals an algorithm defect, never bad input.
type MonotonicityError struct {
	Index int
	Prev  Pair
	Next  Pair
}

func (e *MonotonicityError) Error() string {
	return fmt.Sprintf(
		"%v: indices %d-%d contain %v (interval %d) and %v (interval %d)",
		ErrNotMonotonic, e.Index, e.Index+1,
		e.Prev.MTIE, e.Prev.Interval, e.Next.MTIE, e.Next.Interval,
	)
}

// Is reports whether target is ErrNotMonotonic.
func (e *MonotonicityError) Is(target error) bool {
	return target == ErrNotMonotonic
}
