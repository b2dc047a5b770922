package ntpsync

import "time"

// UpdateListener receives clock corrections from a Synchronizer. The
// offset is the signed adjustment to apply to local wall clock readings;
// stratum is the stratum of the servers that produced it.
type UpdateListener interface {
	SetNTPOffset(offset time.Duration, stratum uint8)
}

// ListenerFunc adapts a plain function to the UpdateListener interface.
type ListenerFunc func(offset time.Duration, stratum uint8)

// SetNTPOffset calls the wrapped function.
func (f ListenerFunc) SetNTPOffset(offset time.Duration, stratum uint8) {
	f(offset, stratum)
}
