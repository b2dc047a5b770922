package skew

import (
	"sync/atomic"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-i2p/ticktime/lib/ticktime"
)

var log = logger.GetGoI2PLogger()

// maxClockSkew holds the acceptable window in ticks. Defaults to 60
// minutes either way. Read and written atomically so a reload can adjust
// the window while validators run on other goroutines.
var maxClockSkew atomic.Uint64

func init() {
	maxClockSkew.Store(ticktime.FromSeconds(60 * 60).Ticks())
}

// MaxClockSkew returns the acceptable difference between a remote
// timestamp and the local clock.
func MaxClockSkew() ticktime.Time {
	return ticktime.FromTicks(maxClockSkew.Load())
}

// SetMaxClockSkew replaces the acceptable window. A Zero window would
// reject every timestamp but an exact clock match, so it is ignored with
// a warning and the previous window stays in effect.
func SetMaxClockSkew(window ticktime.Time) {
	if window.IsZero() {
		log.Warn("ignoring zero clock skew window")
		return
	}
	maxClockSkew.Store(window.Ticks())
}

// nowFunc is overridable for testing. Defaults to ticktime.Now.
var nowFunc = ticktime.Now

// ValidateTimestamp checks whether the given timestamp is within the
// clock skew window (±MaxClockSkew from the current time). It returns
// nil if the timestamp is valid, or a descriptive error if it falls
// outside the window.
//
// The Zero sentinel is always rejected: an epoch timestamp means the
// sender never had a clock reading at all.
func ValidateTimestamp(ts ticktime.Time) error {
	if ts.IsZero() {
		return oops.Errorf("clock skew: timestamp is zero")
	}

	window := MaxClockSkew()
	now := nowFunc()
	diff := ticktime.AbsDifference(now, ts)
	if ticktime.Compare(diff, window) <= 0 {
		return nil
	}

	if ts.Before(now) {
		log.WithFields(logger.Fields{
			"timestamp_ticks": ts.Ticks(),
			"now_ticks":       now.Ticks(),
			"skew_ticks":      diff.Ticks(),
			"max_ticks":       window.Ticks(),
		}).Warn("Rejecting timestamp: too far in the past")
		return oops.Errorf("clock skew: timestamp is %d ticks in the past (max %d)", diff.Ticks(), window.Ticks())
	}

	log.WithFields(logger.Fields{
		"timestamp_ticks": ts.Ticks(),
		"now_ticks":       now.Ticks(),
		"skew_ticks":      diff.Ticks(),
		"max_ticks":       window.Ticks(),
	}).Warn("Rejecting timestamp: too far in the future")
	return oops.Errorf("clock skew: timestamp is %d ticks in the future (max %d)", diff.Ticks(), window.Ticks())
}

// IsTimestampValid is a convenience wrapper around ValidateTimestamp that
// returns a boolean instead of an error.
func IsTimestampValid(ts ticktime.Time) bool {
	return ValidateTimestamp(ts) == nil
}

// ValidateTimestampWithSkew checks the timestamp against a custom window,
// for subsystems that need a different tolerance than the default. A Zero
// window is rejected with an error, as is a Zero timestamp.
func ValidateTimestampWithSkew(ts, maxSkew ticktime.Time) error {
	if maxSkew.IsZero() {
		return oops.Errorf("clock skew: maxSkew must be positive")
	}
	if ts.IsZero() {
		return oops.Errorf("clock skew: timestamp is zero")
	}

	now := nowFunc()
	diff := ticktime.AbsDifference(now, ts)
	if ticktime.Compare(diff, maxSkew) <= 0 {
		return nil
	}
	if ts.Before(now) {
		return oops.Errorf("clock skew: timestamp is %d ticks in the past (max %d)", diff.Ticks(), maxSkew.Ticks())
	}
	return oops.Errorf("clock skew: timestamp is %d ticks in the future (max %d)", diff.Ticks(), maxSkew.Ticks())
}
