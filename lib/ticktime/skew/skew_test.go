package skew

import (
	"strings"
	"testing"

	"github.com/go-i2p/ticktime/lib/ticktime"
)

func fixNow(t *testing.T, now ticktime.Time) {
	t.Helper()
	nowFunc = func() ticktime.Time { return now }
	t.Cleanup(func() { nowFunc = ticktime.Now })
}

// TestValidateTimestamp_CurrentTime verifies "now" itself is valid.
func TestValidateTimestamp_CurrentTime(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)

	if err := ValidateTimestamp(now); err != nil {
		t.Errorf("expected current time to be valid, got error: %v", err)
	}
}

// TestValidateTimestamp_WithinWindow verifies timestamps inside ±60min pass.
func TestValidateTimestamp_WithinWindow(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)

	tests := []struct {
		name string
		ts   ticktime.Time
	}{
		{"30 minutes ago", ticktime.Sub(now, ticktime.FromSeconds(30*60))},
		{"59 minutes ago", ticktime.Sub(now, ticktime.FromSeconds(59*60))},
		{"exactly 60 minutes ago", ticktime.Sub(now, ticktime.FromSeconds(60*60))},
		{"30 minutes in future", ticktime.Add(now, ticktime.FromSeconds(30*60))},
		{"59 minutes in future", ticktime.Add(now, ticktime.FromSeconds(59*60))},
		{"1 tick ago", ticktime.Sub(now, ticktime.FromTicks(1))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateTimestamp(tc.ts); err != nil {
				t.Errorf("expected timestamp %s to be valid, got error: %v", tc.name, err)
			}
		})
	}
}

// TestValidateTimestamp_TooOld verifies stale timestamps are rejected.
func TestValidateTimestamp_TooOld(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)

	ts := ticktime.Sub(now, ticktime.FromSeconds(61*60))
	err := ValidateTimestamp(ts)
	if err == nil {
		t.Fatal("expected stale timestamp to be rejected")
	}
	if !strings.Contains(err.Error(), "in the past") {
		t.Errorf("expected 'in the past' in error, got: %v", err)
	}
}

// TestValidateTimestamp_TooFarInFuture verifies ahead-of-clock timestamps
// are rejected.
func TestValidateTimestamp_TooFarInFuture(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)

	ts := ticktime.Add(now, ticktime.FromSeconds(61*60))
	err := ValidateTimestamp(ts)
	if err == nil {
		t.Fatal("expected future timestamp to be rejected")
	}
	if !strings.Contains(err.Error(), "in the future") {
		t.Errorf("expected 'in the future' in error, got: %v", err)
	}
}

// TestValidateTimestamp_ZeroRejected verifies the Zero sentinel is invalid.
func TestValidateTimestamp_ZeroRejected(t *testing.T) {
	fixNow(t, ticktime.FromSeconds(1700000000))

	if err := ValidateTimestamp(ticktime.Zero()); err == nil {
		t.Error("expected Zero timestamp to be rejected")
	}
}

// TestIsTimestampValid verifies the boolean wrapper.
func TestIsTimestampValid(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)

	if !IsTimestampValid(now) {
		t.Error("expected current time to be valid")
	}
	if IsTimestampValid(ticktime.Zero()) {
		t.Error("expected Zero to be invalid")
	}
	if IsTimestampValid(ticktime.Add(now, ticktime.FromSeconds(2*60*60))) {
		t.Error("expected +2h to be invalid")
	}
}

// TestValidateTimestampWithSkew verifies custom windows and their edges.
func TestValidateTimestampWithSkew(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)

	window := ticktime.FromSeconds(2 * 60)

	if err := ValidateTimestampWithSkew(ticktime.Sub(now, ticktime.FromSeconds(60)), window); err != nil {
		t.Errorf("expected -1min to pass a 2min window, got: %v", err)
	}
	if err := ValidateTimestampWithSkew(ticktime.Add(now, ticktime.FromSeconds(180)), window); err == nil {
		t.Error("expected +3min to fail a 2min window")
	}
	if err := ValidateTimestampWithSkew(now, ticktime.Zero()); err == nil {
		t.Error("expected a Zero window to be rejected")
	}
	if err := ValidateTimestampWithSkew(ticktime.Zero(), window); err == nil {
		t.Error("expected a Zero timestamp to be rejected")
	}
}

// TestSetMaxClockSkew verifies window replacement, the zero-window guard,
// and that validators observe the new window.
func TestSetMaxClockSkew(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)
	t.Cleanup(func() { SetMaxClockSkew(ticktime.FromSeconds(60 * 60)) })

	SetMaxClockSkew(ticktime.FromSeconds(5 * 60))
	if !MaxClockSkew().Equal(ticktime.FromSeconds(5 * 60)) {
		t.Fatalf("expected 5min window, got %d ticks", MaxClockSkew().Ticks())
	}

	if err := ValidateTimestamp(ticktime.Sub(now, ticktime.FromSeconds(4*60))); err != nil {
		t.Errorf("expected -4min to pass a 5min window, got: %v", err)
	}
	if err := ValidateTimestamp(ticktime.Sub(now, ticktime.FromSeconds(6*60))); err == nil {
		t.Error("expected -6min to fail a 5min window")
	}

	SetMaxClockSkew(ticktime.Zero())
	if !MaxClockSkew().Equal(ticktime.FromSeconds(5 * 60)) {
		t.Error("expected a Zero window to be ignored")
	}
}

// TestSetMaxClockSkew_ConcurrentWithValidate verifies the window can be
// adjusted while validators run on other goroutines.
func TestSetMaxClockSkew_ConcurrentWithValidate(t *testing.T) {
	now := ticktime.FromSeconds(1700000000)
	fixNow(t, now)
	t.Cleanup(func() { SetMaxClockSkew(ticktime.FromSeconds(60 * 60)) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			SetMaxClockSkew(ticktime.FromSeconds(30 * 60))
			SetMaxClockSkew(ticktime.FromSeconds(60 * 60))
		}
	}()

	ts := ticktime.Sub(now, ticktime.FromSeconds(10*60))
	for i := 0; i < 1000; i++ {
		if err := ValidateTimestamp(ts); err != nil {
			t.Fatalf("-10min must pass under every concurrent window, got: %v", err)
		}
	}
	<-done
}

// TestValidateTimestamp_InfiniteSentinel verifies the end-of-range sentinel
// is far outside any realistic window.
func TestValidateTimestamp_InfiniteSentinel(t *testing.T) {
	fixNow(t, ticktime.FromSeconds(1700000000))

	if err := ValidateTimestamp(ticktime.Infinite()); err == nil {
		t.Error("expected Infinite timestamp to be rejected")
	}
}
