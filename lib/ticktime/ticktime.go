package ticktime

import (
	"github.com/go-i2p/ticktime/lib/safemath"
)

const (
	// TicksPerSecond is the resolution of a Time: one tick per nanosecond.
	TicksPerSecond uint64 = 1000000000

	// TicksPerMillisecond is the number of ticks in one millisecond.
	TicksPerMillisecond = TicksPerSecond / 1000

	// TicksPerMicrosecond is the number of ticks in one microsecond.
	TicksPerMicrosecond = TicksPerMillisecond / 1000
)

// Time is an opaque point in time counted as nanosecond ticks since the
// Unix epoch (1970-01-01T00:00:00Z). The zero value of the struct is
// Zero(), the beginning of the range. Time is a plain value type with no
// shared state; copy it freely and order it with Compare.
type Time struct {
	t uint64
}

// FromTicks wraps a raw tick count verbatim. Any 64-bit value is legal.
func FromTicks(ticks uint64) Time {
	return Time{t: ticks}
}

// Ticks unwraps the raw tick count verbatim.
func (t Time) Ticks() uint64 {
	return t.t
}

// Zero returns the beginning of the time range, tick 0. It is the
// saturation target for Sub and Div.
func Zero() Time {
	return FromTicks(0)
}

// Infinite returns the end of the time range, tick 2^64-1. It is the
// saturation target for Add and Mul.
func Infinite() Time {
	return FromTicks(^uint64(0))
}

// IsZero reports whether t is the Zero sentinel.
func (t Time) IsZero() bool {
	return t.Equal(Zero())
}

// IsInfinite reports whether t is the Infinite sentinel.
func (t Time) IsInfinite() bool {
	return t.Equal(Infinite())
}

// Compare imposes a strict total order on tick counts. It returns -1 if
// a is before b, 1 if a is after b, and 0 if they are equal. Every other
// relational check in this module is derived from Compare so that a single
// consistent order applies everywhere.
func Compare(a, b Time) int {
	if a.t > b.t {
		return 1
	}
	if a.t < b.t {
		return -1
	}
	return 0
}

// Before reports whether t is strictly earlier than u.
func (t Time) Before(u Time) bool {
	return Compare(t, u) < 0
}

// After reports whether t is strictly later than u.
func (t Time) After(u Time) bool {
	return Compare(t, u) > 0
}

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool {
	return Compare(t, u) == 0
}

// Max returns the later of the two given time values.
func Max(a, b Time) Time {
	if a.t > b.t {
		return a
	}
	return b
}

// Min returns the earlier of the two given time values.
func Min(a, b Time) Time {
	if a.t < b.t {
		return a
	}
	return b
}

// Add returns a+b, saturating to Infinite on overflow.
func Add(a, b Time) Time {
	sum, overflow := safemath.Add(a.t, b.t)
	if overflow {
		return Infinite()
	}
	return FromTicks(sum)
}

// Sub returns a-b, saturating to Zero on underflow (b later than a).
// Subtraction only ever saturates downward.
func Sub(a, b Time) Time {
	diff, underflow := safemath.Sub(a.t, b.t)
	if underflow {
		return Zero()
	}
	return FromTicks(diff)
}

// AbsDifference returns |a-b|. Taking the larger minus the smaller cannot
// underflow, so the result never saturates.
func AbsDifference(a, b Time) Time {
	return Sub(Max(a, b), Min(a, b))
}

// Mul returns a scaled by the given factor, saturating to Infinite on
// overflow.
func Mul(a Time, scalar uint64) Time {
	prod, overflow := safemath.Mul(a.t, scalar)
	if overflow {
		return Infinite()
	}
	return FromTicks(prod)
}

// Div returns a divided by the given divisor. Division by zero yields
// Zero, not an error and not Infinite. Callers elsewhere rely on that
// policy when a computed divisor collapses to nothing.
func Div(a Time, scalar uint64) Time {
	quot, invalid := safemath.Div(a.t, scalar)
	if invalid {
		return Zero()
	}
	return FromTicks(quot)
}
