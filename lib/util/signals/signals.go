// Package signals dispatches process signals to registered handlers:
// SIGHUP triggers config reload handlers, SIGINT/SIGTERM trigger shutdown
// handlers.
package signals

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
)

// sigChan is buffered to avoid missing signals delivered while no receiver is ready.
var sigChan = make(chan os.Signal, 1)

// Handler is a function called when a signal is received.
type Handler func()

var (
	mu           sync.RWMutex
	reloaders    []Handler
	interrupters []Handler
	stopOnce     sync.Once
)

// RegisterReloadHandler registers a handler called on SIGHUP (config reload).
// Nil handlers are silently ignored.
func RegisterReloadHandler(f Handler) {
	if f == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	reloaders = append(reloaders, f)
}

// RegisterInterruptHandler registers a handler called on SIGINT/SIGTERM
// (shutdown). Nil handlers are silently ignored.
func RegisterInterruptHandler(f Handler) {
	if f == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	interrupters = append(interrupters, f)
}

func handleReload() {
	runAll(snapshot(&reloaders), "reload")
}

func handleInterrupted() {
	runAll(snapshot(&interrupters), "interrupt")
}

func snapshot(handlers *[]Handler) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Handler, len(*handlers))
	copy(out, *handlers)
	return out
}

// runAll invokes handlers in registration order, recovering panics so one
// bad handler cannot take down signal dispatch.
func runAll(handlers []Handler, kind string) {
	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// No logger here; stderr keeps panicking handlers visible.
					fmt.Fprintf(os.Stderr, "signals: panic in %s handler: %v\n", kind, r)
				}
			}()
			h()
		}()
	}
}

// StopHandle closes the signal channel, causing Handle() to return. Safe
// to call multiple times; only the first call takes effect.
func StopHandle() {
	stopOnce.Do(func() {
		signal.Stop(sigChan)
		close(sigChan)
	})
}
