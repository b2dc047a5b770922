package ntpsync

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/go-i2p/crypto/rand"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// NTPClient abstracts the NTP query so tests can substitute canned
// responses.
type NTPClient interface {
	QueryWithOptions(host string, options ntp.QueryOptions) (*ntp.Response, error)
}

// DefaultNTPClient queries real servers via beevik/ntp.
type DefaultNTPClient struct{}

func (c *DefaultNTPClient) QueryWithOptions(host string, options ntp.QueryOptions) (*ntp.Response, error) {
	return ntp.QueryWithOptions(host, options)
}

const (
	minQueryInterval     = 5 * time.Minute
	defaultQueryInterval = 11 * time.Minute
	defaultServerList    = "0.pool.ntp.org,1.pool.ntp.org,2.pool.ntp.org"
	defaultConcurring    = 3
	maxConsecutiveFails  = 10
	defaultTimeout       = 10 * time.Second
	maxWaitInit          = 45 * time.Second

	// maxVariance bounds both the first sample's absolute offset and the
	// spread between samples within one query cycle.
	maxVariance = 10 * time.Second

	// wellSyncedOffset: below this the clock is considered well synced and
	// the query interval stretches out.
	wellSyncedOffset = 500 * time.Millisecond
)

// Synchronizer periodically queries NTP servers and distributes the agreed
// clock correction to its listeners. Safe for concurrent use.
type Synchronizer struct {
	servers          []string
	listeners        []UpdateListener
	queryInterval    time.Duration
	concurring       int
	consecutiveFails int
	wellSynced       bool
	initialized      bool
	running          bool
	offset           time.Duration
	stratum          uint8
	mu               sync.Mutex
	stopChan         chan struct{}
	stopOnce         sync.Once
	wg               sync.WaitGroup
	client           NTPClient
	// initChan is closed exactly once when the first query cycle completes.
	initChan chan struct{}
}

// NewSynchronizer creates a Synchronizer with the default pool servers and
// query cadence. Pass a DefaultNTPClient for real queries.
func NewSynchronizer(client NTPClient) *Synchronizer {
	s := &Synchronizer{
		listeners:     []UpdateListener{},
		queryInterval: defaultQueryInterval,
		concurring:    defaultConcurring,
		stopChan:      make(chan struct{}),
		initChan:      make(chan struct{}),
		client:        client,
	}
	s.setServerList(defaultServerList)
	return s
}

// SetServers replaces the server pool. Empty entries are dropped; an
// entirely empty list restores the defaults.
func (s *Synchronizer) SetServers(servers []string) {
	cleaned := make([]string, 0, len(servers))
	for _, server := range servers {
		if trimmed := strings.TrimSpace(server); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		s.setServerList(defaultServerList)
		return
	}
	s.mu.Lock()
	s.servers = cleaned
	s.mu.Unlock()
}

// SetQueryInterval adjusts the cadence between query cycles, clamped to a
// sane minimum so the pools are not hammered.
func (s *Synchronizer) SetQueryInterval(interval time.Duration) {
	if interval < minQueryInterval {
		interval = minQueryInterval
	}
	s.mu.Lock()
	s.queryInterval = interval
	s.mu.Unlock()
}

// SetConcurring adjusts how many servers must agree per cycle, clamped
// to 1..4.
func (s *Synchronizer) SetConcurring(n int) {
	if n < 1 {
		n = 1
	} else if n > 4 {
		n = 4
	}
	s.mu.Lock()
	s.concurring = n
	s.mu.Unlock()
}

func (s *Synchronizer) setServerList(list string) {
	servers := strings.Split(list, ",")
	for i, server := range servers {
		servers[i] = strings.TrimSpace(server)
	}
	s.mu.Lock()
	s.servers = servers
	s.mu.Unlock()
}

// AddListener registers a listener for future corrections.
func (s *Synchronizer) AddListener(listener UpdateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// RemoveListener unregisters a previously added listener. A ListenerFunc
// is matched by its underlying function.
func (s *Synchronizer) RemoveListener(listener UpdateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if listenerEqual(l, listener) {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			break
		}
	}
}

// listenerEqual compares listener identities without panicking on
// uncomparable dynamic types such as ListenerFunc.
func listenerEqual(a, b UpdateListener) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		if ta.Kind() == reflect.Func {
			return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
		}
		return false
	}
	return a == b
}

// Offset returns the most recent agreed correction and the stratum of the
// servers that produced it. Zero before the first successful cycle.
func (s *Synchronizer) Offset() (time.Duration, uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset, s.stratum
}

// Start launches the background query loop. Calling Start on a running
// Synchronizer is a no-op.
func (s *Synchronizer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.wg.Add(1)
	go s.run()
}

// Stop shuts the loop down and waits for it to exit. Idempotent.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}

// WaitForInitialization blocks until the first query cycle completes, or
// until a bounded wait expires.
func (s *Synchronizer) WaitForInitialization() {
	select {
	case <-s.initChan:
	case <-time.After(maxWaitInit):
	}
}

// SyncNow triggers an immediate query cycle outside the regular cadence.
func (s *Synchronizer) SyncNow() {
	s.mu.Lock()
	canRun := s.initialized && s.running
	s.mu.Unlock()
	if canRun {
		go s.performQuery()
	}
}

func (s *Synchronizer) run() {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if !running {
			return
		}

		failed := s.performQuery()
		sleep := s.calculateSleep(failed)

		select {
		case <-time.After(sleep):
		case <-s.stopChan:
			return
		}
	}
}

// performQuery runs one full cycle against the configured servers and
// reports whether it failed.
func (s *Synchronizer) performQuery() bool {
	s.mu.Lock()
	servers := s.servers
	s.mu.Unlock()

	err := s.queryServers(servers, defaultTimeout)
	if err != nil {
		log.WithError(err).Debug("NTP query cycle failed")
	}

	s.markInitialized()
	return err != nil
}

func (s *Synchronizer) markInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		s.initialized = true
		// Close initChan exactly once; guarded by the initialized flag.
		close(s.initChan)
	}
}

// calculateSleep backs off hard after repeated failures and stretches the
// interval when the clock is already well synced.
func (s *Synchronizer) calculateSleep(failed bool) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if failed {
		s.consecutiveFails++
		if s.consecutiveFails >= maxConsecutiveFails {
			return 30 * time.Minute
		}
		return 30 * time.Second
	}

	s.consecutiveFails = 0
	sleep := s.queryInterval + time.Duration(rand.Int63n(int64(s.queryInterval/2)))
	if s.wellSynced {
		sleep *= 3
	}
	return sleep
}

// queryServers gathers the required number of concurring samples, checks
// them for mutual agreement, and distributes the median offset.
func (s *Synchronizer) queryServers(servers []string, timeout time.Duration) error {
	s.mu.Lock()
	concurring := s.concurring
	s.mu.Unlock()

	s.setSynced(false)

	found := make([]time.Duration, concurring)
	var expected time.Duration
	var stratum uint8

	for i := 0; i < concurring; i++ {
		offset, st, err := s.querySingle(servers, timeout)
		if err != nil {
			// One unreachable server must not abort the cycle while others
			// may still answer.
			retried := false
			for attempt := 0; attempt < len(servers)-1; attempt++ {
				offset, st, err = s.querySingle(servers, timeout)
				if err == nil {
					retried = true
					break
				}
			}
			if !retried {
				return oops.Errorf("no NTP server produced a valid response: %w", err)
			}
		}
		found[i] = offset
		stratum = st

		if i == 0 {
			// An implausible first sample is an unreliable baseline; abort
			// the cycle rather than measure agreement against it.
			if absDuration(offset) >= maxVariance {
				return oops.Errorf("first NTP sample offset %s exceeds variance bound %s", offset, maxVariance)
			}
			if absDuration(offset) < wellSyncedOffset {
				s.setSynced(true)
			}
			expected = offset
		} else if absDuration(offset-expected) > maxVariance {
			return oops.Errorf("NTP samples disagree: %s vs expected %s", offset, expected)
		}
	}

	s.stampOffset(median(found), stratum)
	return nil
}

// querySingle queries one randomly selected server and returns the clock
// offset it reports together with its stratum.
func (s *Synchronizer) querySingle(servers []string, timeout time.Duration) (time.Duration, uint8, error) {
	if len(servers) == 0 {
		return 0, 0, oops.Errorf("no NTP servers configured")
	}
	server := servers[rand.Intn(len(servers))]

	response, err := s.client.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		log.WithError(err).WithField("server", server).Debug("NTP query failed")
		return 0, 0, err
	}

	if err := validateResponse(response); err != nil {
		log.WithError(err).WithField("server", server).Debug("NTP response failed validation")
		return 0, 0, err
	}

	return response.ClockOffset, response.Stratum, nil
}

// stampOffset stores the agreed correction and notifies listeners. The
// offset is rounded to the nearest second so small jitter between cycles
// does not wobble every deadline in the process.
func (s *Synchronizer) stampOffset(offset time.Duration, stratum uint8) {
	rounded := offset.Round(time.Second)

	s.mu.Lock()
	s.offset = rounded
	s.stratum = stratum
	listeners := make([]UpdateListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	log.WithFields(logger.Fields{
		"offset":  rounded.String(),
		"stratum": stratum,
	}).Debug("Distributing NTP clock correction")

	for _, listener := range listeners {
		listener.SetNTPOffset(rounded, stratum)
	}
}

func (s *Synchronizer) setSynced(synced bool) {
	s.mu.Lock()
	s.wellSynced = synced
	s.mu.Unlock()
}

// median of a small sample set, less affected by outliers than the mean.
func median(deltas []time.Duration) time.Duration {
	if len(deltas) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(deltas))
	copy(sorted, deltas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
