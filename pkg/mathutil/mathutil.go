// Package mathutil provides small integer helpers shared by the engine.
package mathutil

// WrapMod returns v modulo m as a true mathematical modulo: the result is
// always in [0, m) for positive m, so negative values wrap around instead
// of mirroring the way Go's % remainder does.
func WrapMod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

// FloorDiv returns a divided by b, rounded toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ClampF limits v to the range [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
