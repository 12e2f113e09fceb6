package tracker

import (
	"sync"
	"time"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/core/monitor"
	"github.com/penwyp/go-activity-tracker/internal/core/probe"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

const (
	// Sessions shorter than this are treated as focus noise (accidental
	// alt-tab) and never persisted.
	minSessionSeconds = 10

	// A window title change is a session boundary when the normalized
	// Levenshtein similarity to the previous title falls below this.
	titleChangeThreshold = 0.3
)

// SessionStore is the persistence collaborator consumed by the tracker.
// Finished sessions are handed over once, with EndTime and DurationSeconds
// set; a store failure drops the session after logging.
type SessionStore interface {
	AddSession(session model.ActivitySession) (string, error)
	UpdateSession(id string, endTime, duration int64) (bool, error)
	GetSessions(limit int) ([]model.ActivitySession, error)
	GetTopApplications(limit int) ([]model.AppUsage, error)
	GetTopWebsites(limit int) ([]model.SiteUsage, error)
}

// segmentState is the explicit open/closed session state machine. The zero
// value is closed; Open guards the payload so boundary decisions never
// touch a half-populated session.
type segmentState struct {
	Open      bool
	Session   model.ActivitySession
	LastTitle string
}

// Tracker is the session segmentation engine. A single run-loop goroutine
// owns the open-session state; poll ticks, idle expiry, and stop requests
// are all handled inside that loop, so a poll observation and an idle
// timeout can never both finalize the same session.
type Tracker struct {
	probe   probe.Probe
	monitor *monitor.ActivityMonitor
	store   SessionStore

	mu       sync.Mutex
	settings model.TrackingSettings
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}

	// st is owned by the run loop while running
	st segmentState

	snapMu   sync.RWMutex
	snapshot *model.ActivitySession

	events chan model.SessionEvent
}

// NewTracker creates a tracker over the given probe and store. Settings are
// validated by the caller; invalid defaults are a programming error.
func NewTracker(p probe.Probe, store SessionStore, settings model.TrackingSettings) *Tracker {
	interval := time.Duration(settings.PollIntervalSeconds) * time.Second
	return &Tracker{
		probe:    p,
		monitor:  monitor.NewActivityMonitor(p, interval),
		store:    store,
		settings: settings,
		events:   make(chan model.SessionEvent, 64),
	}
}

// Start begins tracking: the monitor starts polling the probe and the run
// loop starts consuming observations. No-op when already running.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	interval := time.Duration(t.settings.PollIntervalSeconds) * time.Second
	idleThreshold := time.Duration(t.settings.IdleThresholdSeconds) * time.Second

	t.monitor.SetInterval(interval)
	t.monitor.Start()

	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.running = true

	util.LogInfof("Tracking started: interval %v, idle threshold %v", interval, idleThreshold)
	go t.run(t.stopCh, t.doneCh, interval, idleThreshold)
}

// Stop halts tracking, finalizing any open session and clearing the idle
// timer. No-op when already stopped.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	stopCh, doneCh := t.stopCh, t.doneCh
	t.running = false
	t.mu.Unlock()

	close(stopCh)
	<-doneCh
	t.monitor.Stop()
	util.LogInfo("Tracking stopped")
}

// IsTracking reports whether the engine is running
func (t *Tracker) IsTracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// CurrentSession returns a copy of the open session, or nil when no session
// is open.
func (t *Tracker) CurrentSession() *model.ActivitySession {
	t.snapMu.RLock()
	defer t.snapMu.RUnlock()
	if t.snapshot == nil {
		return nil
	}
	copied := *t.snapshot
	return &copied
}

// RecentSessions returns the most recently persisted sessions
func (t *Tracker) RecentSessions(limit int) ([]model.ActivitySession, error) {
	return t.store.GetSessions(limit)
}

// TopApplications returns aggregate usage per application
func (t *Tracker) TopApplications(limit int) ([]model.AppUsage, error) {
	return t.store.GetTopApplications(limit)
}

// TopWebsites returns aggregate usage per website domain
func (t *Tracker) TopWebsites(limit int) ([]model.SiteUsage, error) {
	return t.store.GetTopWebsites(limit)
}

// Events exposes session lifecycle notifications. The channel is buffered;
// events are dropped rather than blocking the run loop when no consumer
// keeps up.
func (t *Tracker) Events() <-chan model.SessionEvent {
	return t.events
}

// Settings returns a copy of the current settings
func (t *Tracker) Settings() model.TrackingSettings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// UpdateSettings merges a partial settings update. Enabled transitions
// start/stop the engine; interval or idle-threshold changes restart the run
// loop (finalizing any open session first) so that two loops never poll for
// one engine instance. Invalid values are rejected and the previous
// settings stay in force.
func (t *Tracker) UpdateSettings(patch model.SettingsPatch) error {
	t.mu.Lock()
	merged := t.settings.Merge(patch)
	if err := merged.Validate(); err != nil {
		t.mu.Unlock()
		util.LogWarnf("Rejected settings update: %v", err)
		return err
	}
	prev := t.settings
	t.settings = merged
	running := t.running
	t.mu.Unlock()

	cadenceChanged := prev.PollIntervalSeconds != merged.PollIntervalSeconds ||
		prev.IdleThresholdSeconds != merged.IdleThresholdSeconds

	switch {
	case prev.Enabled && !merged.Enabled:
		t.Stop()
	case !prev.Enabled && merged.Enabled:
		t.Start()
	case running && cadenceChanged:
		t.Stop()
		t.Start()
	}

	return nil
}

// run is the single owner of the segmentation state. It exits only on stop,
// finalizing any open session on the way out.
func (t *Tracker) run(stop <-chan struct{}, done chan<- struct{}, interval, idleThreshold time.Duration) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	idleTimer := time.NewTimer(idleThreshold)
	defer idleTimer.Stop()

	for {
		select {
		case <-ticker.C:
			obs := t.monitor.GetCurrentActivity()
			if obs == nil {
				continue
			}
			if t.processObservation(obs, time.Now().Unix()) {
				resetTimer(idleTimer, idleThreshold)
			}

		case <-idleTimer.C:
			if remaining, expire := t.confirmIdle(idleThreshold); !expire {
				idleTimer.Reset(remaining)
				continue
			}
			t.handleIdleExpiry(time.Now().Unix())
			// Not re-armed: the timer restarts on the next
			// qualifying observation

		case <-stop:
			t.finalize(time.Now().Unix())
			return
		}
	}
}

// processObservation applies the filter and boundary rules to one
// observation. Returns true when the observation qualifies (resets the idle
// timer), false when it was filtered out.
func (t *Tracker) processObservation(obs *model.CurrentActivity, now int64) bool {
	settings := t.Settings()

	if reason := filterReason(obs, settings); reason != "" {
		if t.st.Open {
			util.LogDebugf("Open session for %s closed by filtered observation (%s)", t.st.Session.Label(), reason)
			t.finalize(now)
		}
		return false
	}

	if t.st.Open && t.continuesSession(obs) {
		t.st.LastTitle = obs.WindowTitle
		return true
	}

	if t.st.Open {
		t.finalize(now)
	}
	t.open(obs, now)
	return true
}

// continuesSession reports whether the observation belongs to the open
// session: same application, same domain for browsers, and for plain
// applications a window title that has not changed significantly.
func (t *Tracker) continuesSession(obs *model.CurrentActivity) bool {
	session := &t.st.Session

	if obs.AppName != session.AppName {
		return false
	}
	if obs.IsBrowser {
		return obs.Domain == session.Domain
	}
	return util.TitleSimilarity(t.st.LastTitle, obs.WindowTitle) >= titleChangeThreshold
}

// open starts a new session for the observation
func (t *Tracker) open(obs *model.CurrentActivity, now int64) {
	category := model.CategoryApplication
	if obs.IsBrowser {
		category = model.CategoryWebsite
	}

	t.st = segmentState{
		Open: true,
		Session: model.ActivitySession{
			AppName:     obs.AppName,
			WindowTitle: obs.WindowTitle,
			Category:    category,
			Domain:      obs.Domain,
			URL:         obs.URL,
			StartTime:   now,
			IsBrowser:   obs.IsBrowser,
		},
		LastTitle: obs.WindowTitle,
	}

	t.setSnapshot(&t.st.Session)
	t.publish(model.SessionStarted, t.st.Session)
	util.LogDebugf("Session started: %s (%s)", t.st.Session.Label(), category)
}

// finalize closes the open session at now. Sessions under the minimum
// duration are discarded as focus noise; persistence failures drop the
// session after logging, since the interval has already ended.
func (t *Tracker) finalize(now int64) {
	if !t.st.Open {
		return
	}

	session := t.st.Session
	session.EndTime = now
	session.DurationSeconds = now - session.StartTime
	t.st = segmentState{}
	t.setSnapshot(nil)

	if session.DurationSeconds < minSessionSeconds {
		util.LogDebugf("Discarded %ds session for %s as focus noise", session.DurationSeconds, session.Label())
		t.publish(model.SessionDiscarded, session)
		return
	}

	id, err := t.store.AddSession(session)
	if err != nil {
		util.LogErrorf("Failed to persist session for %s, dropping it: %v", session.Label(), err)
		return
	}
	session.ID = id

	t.publish(model.SessionFinalized, session)
	util.LogInfof("Session finalized: %s, %s", session.Label(), util.FormatSeconds(session.DurationSeconds))
}

// confirmIdle cross-checks an idle-timer expiry against the true OS input
// idle time. A user who was active more recently than the threshold means
// the expiry is a scheduling artifact: the timer is re-armed for the
// remaining span. An unsupported or failing idle query lets the timer
// expiry stand.
func (t *Tracker) confirmIdle(idleThreshold time.Duration) (remaining time.Duration, expire bool) {
	if !t.st.Open {
		return 0, true
	}

	idleSeconds, err := t.probe.SystemIdleSeconds()
	if err != nil {
		util.LogDebugf("System idle query unavailable, trusting idle timer: %v", err)
		return 0, true
	}

	idle := time.Duration(idleSeconds) * time.Second
	if idle >= idleThreshold {
		return 0, true
	}

	util.LogDebugf("Idle timer fired but OS reports %v idle, re-arming", idle)
	return idleThreshold - idle, false
}

// handleIdleExpiry finalizes the open session after the idle threshold has
// passed with no qualifying observation. No session reopens until the next
// qualifying observation.
func (t *Tracker) handleIdleExpiry(now int64) {
	if !t.st.Open {
		return
	}
	util.LogInfof("Idle threshold reached, closing session for %s", t.st.Session.Label())
	t.finalize(now)
}

func (t *Tracker) setSnapshot(session *model.ActivitySession) {
	t.snapMu.Lock()
	defer t.snapMu.Unlock()
	if session == nil {
		t.snapshot = nil
		return
	}
	copied := *session
	t.snapshot = &copied
}

func (t *Tracker) publish(kind model.SessionEventKind, session model.ActivitySession) {
	select {
	case t.events <- model.SessionEvent{Kind: kind, Session: session}:
	default:
		util.LogDebug("Session event dropped, no consumer keeping up")
	}
}

// resetTimer safely re-arms a timer owned by the run loop
func resetTimer(tm *time.Timer, d time.Duration) {
	if !tm.Stop() {
		select {
		case <-tm.C:
		default:
		}
	}
	tm.Reset(d)
}
