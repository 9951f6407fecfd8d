package mtie

// Validate checks that MTIE never decreases along the curve.
// A failure is an internal defect and must not be corrected by the caller.
func Validate(curve Curve) error {
	for i := 1; i < len(curve); i++ {
		if curve[i].MTIE < curve[i-1].MTIE {
			return &MonotonicityError{Index: i - 1, Prev: curve[i-1], Next: curve[i]}
		}
	}

	return nil
}
