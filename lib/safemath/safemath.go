package safemath

import "math/bits"

// Add returns a+b and whether the sum overflowed 64 bits.
func Add(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry != 0
}

// Sub returns a-b and whether the subtraction underflowed (b > a).
func Sub(a, b uint64) (uint64, bool) {
	diff, borrow := bits.Sub64(a, b, 0)
	return diff, borrow != 0
}

// Mul returns a*b and whether the product overflowed 64 bits.
func Mul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi != 0
}

// Div returns a/b and whether the division was invalid. The only invalid
// case for unsigned division is a zero divisor, which reports failure with
// a zero result instead of panicking.
func Div(a, b uint64) (uint64, bool) {
	if b == 0 {
		return 0, true
	}
	return a / b, false
}
