package monitor

import (
	"sync"
	"time"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/core/probe"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

// ActivityMonitor drives the window probe on a fixed cadence and caches the
// most recent successful observation. Capture failures leave the cache
// untouched so readers always see the last known foreground activity.
type ActivityMonitor struct {
	probe    probe.Probe
	interval time.Duration

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	currentMu sync.RWMutex
	current   *model.CurrentActivity
}

// NewActivityMonitor creates a monitor polling at the given interval
func NewActivityMonitor(p probe.Probe, interval time.Duration) *ActivityMonitor {
	return &ActivityMonitor{
		probe:    p,
		interval: interval,
	}
}

// Start performs one immediate capture and begins the recurring poll loop.
// No-op when already running.
func (m *ActivityMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	util.LogDebugf("Activity monitor started, interval %v", m.interval)
	go m.loop(m.stop, m.done)
}

// Stop cancels the recurring poll. No-op when already stopped.
func (m *ActivityMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	close(m.stop)
	<-m.done
	m.running = false
	util.LogDebug("Activity monitor stopped")
}

// SetInterval applies a new poll cadence. While running this is a
// stop+start so the change is atomic from the caller's perspective.
func (m *ActivityMonitor) SetInterval(interval time.Duration) {
	m.mu.Lock()
	wasRunning := m.running
	m.mu.Unlock()

	if wasRunning {
		m.Stop()
	}

	m.mu.Lock()
	m.interval = interval
	m.mu.Unlock()

	if wasRunning {
		m.Start()
	}
}

// IsRunning reports whether the poll loop is active
func (m *ActivityMonitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// GetCurrentActivity returns the most recent successfully captured
// observation, or nil before the first capture.
func (m *ActivityMonitor) GetCurrentActivity() *model.CurrentActivity {
	m.currentMu.RLock()
	defer m.currentMu.RUnlock()
	return m.current
}

func (m *ActivityMonitor) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	m.capture()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.capture()
		case <-stop:
			return
		}
	}
}

// capture invokes the probe once. The probe call may block on an external
// process; no state is written until it returns.
func (m *ActivityMonitor) capture() {
	activity := m.probe.Capture()
	if activity == nil {
		// Keep the previous observation, the failure is already logged
		// at the probe boundary
		return
	}

	m.currentMu.Lock()
	m.current = activity
	m.currentMu.Unlock()
}
