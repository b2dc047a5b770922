package ticktime

import (
	"sync/atomic"
	"time"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// nowFunc holds the process-wide wall clock source, always a
// func() time.Time. Defaults to time.Now; replaced via SetTimeSource by
// the clock package and by tests. Reads and swaps go through the atomic,
// so installing a source while other goroutines read the clock is safe.
var nowFunc atomic.Value

func init() {
	nowFunc.Store(time.Now)
}

// Now returns the current time from the installed clock source as ticks
// since the epoch.
//
// A source that cannot produce a reading is expected to return the zero
// time.Time; Now maps that to Zero() rather than surfacing an error, so
// deadline math downstream stays check-free. The substitution is logged
// since an epoch reading almost always means a misbehaving source.
func Now() Time {
	wall := nowFunc.Load().(func() time.Time)()
	if wall.IsZero() {
		log.Warn("clock source returned a zero reading, substituting epoch")
		return Zero()
	}
	return FromStdTime(wall)
}

// SetTimeSource installs fn as the wall clock source consulted by Now.
// Passing nil restores the default time.Now source.
func SetTimeSource(fn func() time.Time) {
	if fn == nil {
		fn = time.Now
	}
	nowFunc.Store(fn)
}
