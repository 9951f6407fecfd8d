// Package mtie computes Maximum Time Interval Error from evenly spaced Time
// Interval Error samples.
//
// Two engines are provided. Complete evaluates every integer interval from 1
// to N-1 by brute force and is exact, but O(n²); it refuses inputs larger than
// MaxCompleteSamples. Fast builds a min/max doubling pyramid in O(n log n) and
// reports MTIE only at dyadic intervals 2^k-1. Selector picks between them by
// sample count, and Validate checks that a curve never decreases.
//
// All engines are pure functions of their input: they never mutate the
// samples, never log, and keep no state between calls.
package mtie
