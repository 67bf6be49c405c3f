// Package network tracks reachability of the remote service. A transport
// wrapper observes every outgoing request; connectivity-class failures are
// converted into synthetic "service unavailable" responses and drive a
// tri-state reachability signal with a single-flight reconnection poll.
package network

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/am24/brickshop/internal/app"
)

// Reachability is the process-wide connectivity state.
type Reachability int32

const (
	ReachabilityConnected Reachability = iota
	ReachabilityConnecting
	ReachabilityOffline
)

func (r Reachability) String() string {
	switch r {
	case ReachabilityConnected:
		return "connected"
	case ReachabilityConnecting:
		return "connecting"
	case ReachabilityOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Probe performs one lightweight reachability check, nil on success.
type Probe func(ctx context.Context) error

// MonitorConfig holds the reconnection poll policy.
type MonitorConfig struct {
	Attempts     int           // probes per poll before giving up
	Interval     time.Duration // spacing between probes
	ProbeTimeout time.Duration // per-probe timeout, much shorter than real requests
	SettleDelay  time.Duration // pause between CONNECTING and CONNECTED
}

// DefaultMonitorConfig returns the production poll policy.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Attempts:     20,
		Interval:     1500 * time.Millisecond,
		ProbeTimeout: 2 * time.Second,
		SettleDelay:  500 * time.Millisecond,
	}
}

// Monitor owns the reachability state. It is written from two places (the
// transport wrapper on every call's outcome, and the poll goroutine) and
// read by any number of observers, so state and the poll guard are atomics.
type Monitor struct {
	probe  Probe
	config MonitorConfig

	state   atomic.Int32
	polling atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	subscribers []func(Reachability)
}

// NewMonitor creates a monitor in the CONNECTED state.
func NewMonitor(probe Probe, config MonitorConfig) *Monitor {
	if config.Attempts <= 0 {
		config.Attempts = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Monitor{
		probe:  probe,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
	m.state.Store(int32(ReachabilityConnected))
	return m
}

// State returns the current reachability.
func (m *Monitor) State() Reachability {
	return Reachability(m.state.Load())
}

// Subscribe registers a callback invoked on every state transition. The
// callback runs on the transitioning goroutine and must not block.
func (m *Monitor) Subscribe(fn func(Reachability)) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	m.mu.Unlock()
}

func (m *Monitor) setState(r Reachability) {
	old := m.state.Swap(int32(r))
	if Reachability(old) == r {
		return
	}
	app.GetLogger().Info("reachability %s -> %s", Reachability(old), r)

	m.mu.Lock()
	subs := append([]func(Reachability){}, m.subscribers...)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(r)
	}
}

// ReportSuccess records a successful real request. A single success is
// enough to clear OFFLINE even outside the poll loop.
func (m *Monitor) ReportSuccess() {
	if m.State() != ReachabilityConnected {
		m.setState(ReachabilityConnected)
	}
}

// ReportFailure records a connectivity-class failure: the state drops to
// OFFLINE and the reconnection poll starts if not already running.
func (m *Monitor) ReportFailure() {
	if m.State() != ReachabilityOffline {
		m.setState(ReachabilityOffline)
	}
	m.startPoll()
}

// NotifyOffline lets an external connectivity signal short-circuit straight
// to OFFLINE without waiting for a request to fail.
func (m *Monitor) NotifyOffline() {
	m.ReportFailure()
}

// startPoll launches the reconnection poll. Single-flight: triggers while a
// poll is already running are no-ops.
func (m *Monitor) startPoll() {
	if !m.polling.CompareAndSwap(false, true) {
		return
	}
	m.wg.Add(1)
	go m.pollLoop()
}

func (m *Monitor) pollLoop() {
	defer m.wg.Done()
	defer m.polling.Store(false)

	for attempt := 0; attempt < m.config.Attempts; attempt++ {
		probeCtx, cancel := context.WithTimeout(m.ctx, m.config.ProbeTimeout)
		err := m.probe(probeCtx)
		cancel()

		if err == nil {
			m.setState(ReachabilityConnecting)
			if !m.sleep(m.config.SettleDelay) {
				return
			}
			m.setState(ReachabilityConnected)
			return
		}

		if m.ctx.Err() != nil {
			return
		}
		if !m.sleep(m.config.Interval) {
			return
		}
	}

	// Exhausted: stay OFFLINE until the next failed real request or
	// external signal re-triggers the poll.
	m.setState(ReachabilityOffline)
}

// sleep waits for d unless the monitor is closed first.
func (m *Monitor) sleep(d time.Duration) bool {
	select {
	case <-m.ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// Close stops any running poll and waits for it to exit.
func (m *Monitor) Close() {
	m.cancel()
	m.wg.Wait()
}
