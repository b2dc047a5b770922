package ntpsync

import (
	"time"

	"github.com/beevik/ntp"
	"github.com/samber/oops"
)

const (
	maxRTT            = 2 * time.Second  // Max acceptable round-trip time
	maxClockOffset    = 10 * time.Second // Max acceptable clock offset
	maxRootDispersion = 1 * time.Second  // Max acceptable root dispersion
	maxRootDelay      = 1 * time.Second  // Max acceptable root delay
)

// validateResponse vets an SNTP response before it may influence the
// clock: leap indicator, stratum level, timing metrics, time value, and
// root metrics all have to pass.
func validateResponse(response *ntp.Response) error {
	if err := validateLeapAndStratum(response); err != nil {
		return err
	}
	if err := validateTimingMetrics(response); err != nil {
		return err
	}
	if response.Time.IsZero() {
		return oops.Errorf("invalid NTP response: received zero time")
	}
	return validateRootMetrics(response)
}

// validateLeapAndStratum checks the leap indicator and stratum level.
func validateLeapAndStratum(response *ntp.Response) error {
	if response.Leap == ntp.LeapNotInSync {
		return oops.Errorf("invalid NTP response: server clock not synchronized (leap indicator)")
	}
	if response.Stratum == 0 || response.Stratum > 15 {
		return oops.Errorf("invalid NTP response: stratum level %d out of valid range", response.Stratum)
	}
	return nil
}

// validateTimingMetrics checks round-trip delay and clock offset bounds.
func validateTimingMetrics(response *ntp.Response) error {
	if response.RTT < 0 || response.RTT > maxRTT {
		return oops.Errorf("invalid NTP response: round-trip delay %s out of bounds", response.RTT)
	}
	if absDuration(response.ClockOffset) > maxClockOffset {
		return oops.Errorf("invalid NTP response: clock offset %s out of bounds", response.ClockOffset)
	}
	return nil
}

// validateRootMetrics checks root dispersion and root delay thresholds.
func validateRootMetrics(response *ntp.Response) error {
	if response.RootDispersion > maxRootDispersion {
		return oops.Errorf("invalid NTP response: root dispersion %s too high", response.RootDispersion)
	}
	if response.RootDelay > maxRootDelay {
		return oops.Errorf("invalid NTP response: root delay %s too high", response.RootDelay)
	}
	return nil
}
