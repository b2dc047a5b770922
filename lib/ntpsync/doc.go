// Package ntpsync keeps the local tick clock honest by querying NTP pool
// servers in the background.
//
// A Synchronizer periodically samples several servers, requires the
// samples to agree within a bounded variance, and pushes the median
// correction offset to its registered listeners. A clock.Clock satisfies
// the UpdateListener interface directly:
//
//	c := clock.NewClock()
//	c.Install()
//	sync := ntpsync.NewSynchronizer(&ntpsync.DefaultNTPClient{})
//	sync.AddListener(c)
//	sync.Start()
//	defer sync.Stop()
//
// Responses are validated (leap indicator, stratum, round-trip time,
// offset and root metrics) before they are allowed to influence the
// clock, so a single misconfigured or hostile server cannot drag the
// process time around.
package ntpsync
