package ticktime

import (
	"math"
	"time"
)

// WallClock splits t into whole seconds since the epoch and microseconds
// within the second, the shape a traditional timeval carries. Sub-microsecond
// precision is truncated, not rounded.
func (t Time) WallClock() (sec int64, usec int32) {
	sec = int64(t.t / TicksPerSecond)
	usec = int32(t.t % TicksPerSecond / TicksPerMicrosecond)
	return
}

// FromSeconds converts whole seconds since the epoch to a Time, saturating
// to Infinite if the tick count would overflow.
func FromSeconds(s uint64) Time {
	return Mul(FromTicks(s), TicksPerSecond)
}

// Seconds returns t as whole seconds since the epoch, truncating.
func (t Time) Seconds() uint64 {
	return Div(t, TicksPerSecond).Ticks()
}

// FromMillis converts milliseconds since the epoch to a Time, saturating
// to Infinite on overflow.
func FromMillis(ms uint64) Time {
	return Mul(FromTicks(ms), TicksPerMillisecond)
}

// Millis returns t as milliseconds since the epoch, truncating.
func (t Time) Millis() uint64 {
	return Div(t, TicksPerMillisecond).Ticks()
}

// FromMicros converts microseconds since the epoch to a Time, saturating
// to Infinite on overflow.
func FromMicros(us uint64) Time {
	return Mul(FromTicks(us), TicksPerMicrosecond)
}

// Micros returns t as microseconds since the epoch, truncating.
func (t Time) Micros() uint64 {
	return Div(t, TicksPerMicrosecond).Ticks()
}

// FromDuration converts a span of time to a tick count. Negative durations
// clamp to Zero; tick counts are unsigned and have no before-the-beginning.
func FromDuration(d time.Duration) Time {
	if d < 0 {
		return Zero()
	}
	return FromTicks(uint64(d))
}

// Duration returns t as a time.Duration, saturating at the maximum
// representable duration. Infinite() therefore maps to roughly 292 years,
// still far beyond any deadline worth waiting for.
func (t Time) Duration() time.Duration {
	if t.t > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(t.t)
}

// FromStdTime converts a standard library time.Time to ticks since the
// epoch. Instants before the epoch, including the zero time.Time, clamp
// to Zero.
func FromStdTime(st time.Time) Time {
	sec := st.Unix()
	if sec < 0 {
		return Zero()
	}
	whole := Mul(FromTicks(uint64(sec)), TicksPerSecond)
	return Add(whole, FromTicks(uint64(st.Nanosecond())))
}

// StdTime converts t to a standard library time.Time for interoperability
// with APIs that expect one. The full tick range exceeds what time.Time
// formats gracefully, but the conversion itself is exact.
func (t Time) StdTime() time.Time {
	return time.Unix(int64(t.t/TicksPerSecond), int64(t.t%TicksPerSecond))
}
