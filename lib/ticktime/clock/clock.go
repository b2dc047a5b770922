package clock

import (
	"sync"
	"time"

	"github.com/go-i2p/logger"

	"github.com/go-i2p/ticktime/lib/ticktime"
)

var log = logger.GetGoI2PLogger()

// Clock is a wall clock with a correction offset, read out in ticks.
// The offset is updated when an external time authority (NTP) determines
// a new correction. Clock is safe for concurrent use.
type Clock struct {
	// offset is added to every reading. Protected by mu.
	offset time.Duration
	mu     sync.RWMutex
}

// NewClock creates a Clock with zero offset.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current corrected time as ticks since the epoch.
func (c *Clock) Now() ticktime.Time {
	c.mu.RLock()
	offset := c.offset
	c.mu.RUnlock()
	return ticktime.FromStdTime(time.Now().Add(offset))
}

// SetOffset replaces the correction offset.
func (c *Clock) SetOffset(offset time.Duration) {
	c.mu.Lock()
	c.offset = offset
	c.mu.Unlock()
}

// Offset returns the current correction offset.
func (c *Clock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// SetNTPOffset records a correction determined by an NTP sync cycle along
// with the stratum of the consulted servers. It satisfies the ntpsync
// UpdateListener interface, so a Clock can be registered on a Synchronizer
// directly.
func (c *Clock) SetNTPOffset(offset time.Duration, stratum uint8) {
	log.WithFields(logger.Fields{
		"offset":  offset.String(),
		"stratum": stratum,
	}).Debug("Applying NTP clock correction")
	c.SetOffset(offset)
}

// Install makes this Clock the process-wide source behind ticktime.Now().
func (c *Clock) Install() {
	ticktime.SetTimeSource(func() time.Time {
		c.mu.RLock()
		offset := c.offset
		c.mu.RUnlock()
		return time.Now().Add(offset)
	})
}
