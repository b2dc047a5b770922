// Package safemath provides overflow-checked arithmetic over unsigned
// 64-bit integers.
//
// Each operation returns the result together with a flag reporting whether
// the operation overflowed, underflowed, or was otherwise invalid. Callers
// decide the recovery policy; this package never wraps silently and never
// panics. It is the only place in this module where overflow detection
// lives — higher layers build their saturation behavior on top of it.
package safemath
