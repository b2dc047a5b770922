package clock

import (
	"sync"

	"github.com/go-i2p/ticktime/lib/ticktime"
)

// Deadline represents a point after which something has expired, tracked
// entirely in tick units. Expiry checks go through the saturating algebra,
// so no combination of start time and lifetime can wrap into a deadline
// that is silently already in the past.
//
// Deadline is safe for concurrent use by multiple goroutines.
type Deadline struct {
	mu       sync.RWMutex
	start    ticktime.Time
	lifetime ticktime.Time
}

// NewDeadline creates a Deadline that expires after the given lifetime,
// starting now. A lifetime of Infinite never expires; a lifetime of Zero
// is expired immediately. Lifetimes are unsigned ticks, so there is no
// negative case to reject.
func NewDeadline(lifetime ticktime.Time) *Deadline {
	return &Deadline{
		start:    ticktime.Now(),
		lifetime: lifetime,
	}
}

// NewDeadlineAt creates a Deadline with an explicit start time, for when
// the operation began earlier than the bookkeeping (a request sent before
// its response arrived, say).
func NewDeadlineAt(start, lifetime ticktime.Time) *Deadline {
	return &Deadline{
		start:    start,
		lifetime: lifetime,
	}
}

// IsExpired reports whether the deadline has passed.
func (d *Deadline) IsExpired() bool {
	d.mu.RLock()
	start, lifetime := d.start, d.lifetime
	d.mu.RUnlock()
	elapsed := ticktime.Sub(ticktime.Now(), start)
	return ticktime.Compare(elapsed, lifetime) >= 0
}

// Remaining returns the time left until expiry, Zero once expired. The
// subtraction saturates, so callers never see a wrapped huge remainder.
func (d *Deadline) Remaining() ticktime.Time {
	d.mu.RLock()
	start, lifetime := d.start, d.lifetime
	d.mu.RUnlock()
	elapsed := ticktime.Sub(ticktime.Now(), start)
	return ticktime.Sub(lifetime, elapsed)
}

// Elapsed returns how long ago the deadline started, Zero if the clock
// has moved behind the start time.
func (d *Deadline) Elapsed() ticktime.Time {
	d.mu.RLock()
	start := d.start
	d.mu.RUnlock()
	return ticktime.Sub(ticktime.Now(), start)
}

// Lifetime returns the total configured lifetime.
func (d *Deadline) Lifetime() ticktime.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lifetime
}

// StartedAt returns the tick time the deadline started from.
func (d *Deadline) StartedAt() ticktime.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.start
}

// Expiry returns the absolute tick time at which the deadline expires.
// A lifetime near the end of the range saturates to Infinite.
func (d *Deadline) Expiry() ticktime.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ticktime.Add(d.start, d.lifetime)
}

// Extend adds additional lifetime, useful for lease renewal. The addition
// saturates to Infinite rather than wrapping.
func (d *Deadline) Extend(additional ticktime.Time) {
	d.mu.Lock()
	d.lifetime = ticktime.Add(d.lifetime, additional)
	d.mu.Unlock()
}
