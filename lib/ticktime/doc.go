// Package ticktime provides an opaque, saturating time value for timeout
// and deadline bookkeeping.
//
// A Time is a count of nanosecond ticks since the Unix epoch, stored in an
// unsigned 64-bit integer. That gives a range of roughly 584 years from
// 1970, which comfortably covers every deadline a router will ever set.
// The type is deliberately opaque: tick counts cannot be mixed with raw
// integers or other time units by accident, and the only escape hatches
// are the explicit FromTicks and Ticks conversions.
//
// Two tick counts double as sentinels. Zero (tick 0) is the beginning of
// the range and Infinite (tick 2^64-1) is the end. Both order normally
// under Compare, and both serve as saturation targets for the arithmetic
// operations: Add and Mul clamp to Infinite on overflow, Sub and Div clamp
// to Zero on underflow or invalid input. No operation returns an error and
// no operation panics, so duration math never needs a per-call check —
// callers that care can compare the result against Zero() or Infinite()
// to detect that a boundary was hit.
//
// Usage for deadline arithmetic:
//
//	deadline := ticktime.Add(ticktime.Now(), ticktime.FromSeconds(30))
//	// ... later ...
//	if ticktime.Now().After(deadline) {
//	    // Timed out. Overflow above would have produced Infinite(),
//	    // which never expires — not a wrapped-around tiny deadline.
//	}
//
// Only Now reads external state; every other operation is a pure function
// over its operands and is safe to use from any goroutine without locking.
package ticktime
