// Package skew validates tick timestamps against the local clock.
//
// Timestamps that arrive from disk or from the network carry no guarantee
// of a sane clock on the other end. This package centralizes the check
// that such a timestamp falls within an acceptable window of the local
// (NTP-corrected) clock, so every subsystem applies the same tolerance.
//
// Usage:
//
//	if err := skew.ValidateTimestamp(record.PublishedAt()); err != nil {
//	    // Reject the record.
//	}
package skew
