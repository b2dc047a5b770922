// Package clock provides an offset-adjustable tick clock and a Deadline
// type built on the saturating tick algebra.
//
// A Clock reads the system wall clock and applies a correction offset,
// typically maintained by an NTP synchroniser. Install a Clock as the
// process-wide source with Install so that ticktime.Now() reflects the
// correction everywhere.
//
// Deadline tracks a time-bounded operation in tick units. Because the
// tick algebra saturates, an absurdly large lifetime produces a deadline
// of Infinite — one that never expires — instead of wrapping around into
// one that expired decades ago.
//
// Usage for tunnel-style expiration:
//
//	deadline := clock.NewDeadline(ticktime.FromSeconds(600))
//	// ... later ...
//	if deadline.IsExpired() {
//	    // Rebuild.
//	}
package clock
