package ntpsync

import (
	"testing"
	"time"

	"github.com/beevik/ntp"
)

func TestValidateResponse_Valid(t *testing.T) {
	if err := validateResponse(goodResponse(time.Second)); err != nil {
		t.Errorf("expected a clean response to validate, got: %v", err)
	}
}

func TestValidateResponse_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ntp.Response)
	}{
		{"leap not in sync", func(r *ntp.Response) { r.Leap = ntp.LeapNotInSync }},
		{"stratum zero", func(r *ntp.Response) { r.Stratum = 0 }},
		{"stratum too high", func(r *ntp.Response) { r.Stratum = 16 }},
		{"negative RTT", func(r *ntp.Response) { r.RTT = -time.Second }},
		{"RTT too high", func(r *ntp.Response) { r.RTT = 3 * time.Second }},
		{"offset too high", func(r *ntp.Response) { r.ClockOffset = 11 * time.Second }},
		{"offset too low", func(r *ntp.Response) { r.ClockOffset = -11 * time.Second }},
		{"zero time", func(r *ntp.Response) { r.Time = time.Time{} }},
		{"root dispersion too high", func(r *ntp.Response) { r.RootDispersion = 2 * time.Second }},
		{"root delay too high", func(r *ntp.Response) { r.RootDelay = 2 * time.Second }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := goodResponse(time.Second)
			tc.mutate(r)
			if err := validateResponse(r); err == nil {
				t.Errorf("expected %s to be rejected", tc.name)
			}
		})
	}
}
