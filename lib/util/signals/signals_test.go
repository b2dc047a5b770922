package signals

import (
	"sync"
	"testing"
)

func resetHandlers(t *testing.T) {
	t.Helper()
	mu.Lock()
	origReload, origInterrupt := reloaders, interrupters
	reloaders, interrupters = nil, nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		reloaders, interrupters = origReload, origInterrupt
		mu.Unlock()
	})
}

// TestRegisterReloadHandler verifies reload handler registration and dispatch.
func TestRegisterReloadHandler(t *testing.T) {
	resetHandlers(t)

	called := false
	RegisterReloadHandler(func() { called = true })

	handleReload()

	if !called {
		t.Error("reload handler was not called")
	}
}

// TestRegisterInterruptHandler verifies interrupt handler registration and dispatch.
func TestRegisterInterruptHandler(t *testing.T) {
	resetHandlers(t)

	called := false
	RegisterInterruptHandler(func() { called = true })

	handleInterrupted()

	if !called {
		t.Error("interrupt handler was not called")
	}
}

// TestHandlersCalledInOrder verifies handlers run in registration order.
func TestHandlersCalledInOrder(t *testing.T) {
	resetHandlers(t)

	var order []int
	for i := 0; i < 3; i++ {
		idx := i
		RegisterReloadHandler(func() { order = append(order, idx) })
	}

	handleReload()

	if len(order) != 3 {
		t.Fatalf("expected 3 handlers called, got %d", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Errorf("expected handler %d at position %d, got %d", i, i, got)
		}
	}
}

// TestNilHandlersIgnored verifies nil handlers are not registered.
func TestNilHandlersIgnored(t *testing.T) {
	resetHandlers(t)

	RegisterReloadHandler(nil)
	RegisterInterruptHandler(nil)

	mu.RLock()
	defer mu.RUnlock()
	if len(reloaders) != 0 || len(interrupters) != 0 {
		t.Error("nil handlers must not be registered")
	}
}

// TestPanicRecovery verifies a panicking handler does not stop the chain.
func TestPanicRecovery(t *testing.T) {
	resetHandlers(t)

	calledAfterPanic := false
	RegisterInterruptHandler(func() { panic("boom") })
	RegisterInterruptHandler(func() { calledAfterPanic = true })

	handleInterrupted()

	if !calledAfterPanic {
		t.Error("handler after panicking handler was not called")
	}
}

// TestConcurrentRegistration verifies registration is safe across goroutines.
func TestConcurrentRegistration(t *testing.T) {
	resetHandlers(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RegisterReloadHandler(func() {})
		}()
	}
	wg.Wait()

	mu.RLock()
	defer mu.RUnlock()
	if len(reloaders) != 50 {
		t.Errorf("expected 50 handlers, got %d", len(reloaders))
	}
}
