// Package safeconv provides overflow-checked integer helpers for window and
// power-of-two arithmetic.
package safeconv

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MaxShift is the largest exponent k for which 1<<k fits in a non-negative int.
const MaxShift = bits.UintSize - 2

// ErrOverflow is returned when a power of two does not fit in an int.
var ErrOverflow = errors.New("safeconv: power of two overflows int")

// ErrNegativeExponent is returned for exponents below zero.
var ErrNegativeExponent = errors.New("safeconv: negative exponent")

// Pow2 returns 2^k as an int.
func Pow2(k int) (int, error) {
	if k < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeExponent, k)
	}

	if k > MaxShift {
		return 0, fmt.Errorf("%w: 2^%d exceeds %d-bit int", ErrOverflow, k, bits.UintSize)
	}

	return 1 << k, nil
}

// MustPow2 returns 2^k, panics on overflow.
// Use only when overflow is logically impossible.
func MustPow2(k int) int {
	v, err := Pow2(k)
	if err != nil {
		panic(err.Error())
	}

	return v
}

// Log2Floor returns floor(log2(n)) for n >= 1 and 0 otherwise.
// The result never exceeds MaxShift, so Pow2 of it always succeeds.
func Log2Floor(n int) int {
	if n < 1 {
		return 0
	}

	return bits.Len(uint(n)) - 1
}
