package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

// memStore records finished sessions in memory
type memStore struct {
	sessions []model.ActivitySession
	failAdd  bool
}

func (s *memStore) AddSession(session model.ActivitySession) (string, error) {
	if s.failAdd {
		return "", fmt.Errorf("disk full")
	}
	session.ID = fmt.Sprintf("s%d", len(s.sessions)+1)
	s.sessions = append(s.sessions, session)
	return session.ID, nil
}

func (s *memStore) UpdateSession(id string, endTime, duration int64) (bool, error) {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions[i].EndTime = endTime
			s.sessions[i].DurationSeconds = duration
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) GetSessions(limit int) ([]model.ActivitySession, error) {
	return s.sessions, nil
}

func (s *memStore) GetTopApplications(limit int) ([]model.AppUsage, error) {
	return nil, nil
}

func (s *memStore) GetTopWebsites(limit int) ([]model.SiteUsage, error) {
	return nil, nil
}

// idleProbe only serves SystemIdleSeconds; Capture is never used in these
// tests because observations are fed to the engine directly.
type idleProbe struct {
	idle    int64
	idleErr error
}

func (p *idleProbe) Capture() *model.CurrentActivity      { return nil }
func (p *idleProbe) SystemIdleSeconds() (int64, error)    { return p.idle, p.idleErr }
func (p *idleProbe) Platform() string                     { return "fake" }

func newTestTracker(store *memStore) *Tracker {
	return NewTracker(&idleProbe{}, store, model.DefaultTrackingSettings())
}

func appObs(app, title string) *model.CurrentActivity {
	return &model.CurrentActivity{AppName: app, WindowTitle: title}
}

func siteObs(app, title, domain string) *model.CurrentActivity {
	return &model.CurrentActivity{AppName: app, WindowTitle: title, Domain: domain, IsBrowser: true}
}

func drainEvents(t *Tracker) []model.SessionEvent {
	var events []model.SessionEvent
	for {
		select {
		case e := <-t.Events():
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestAppSwitchFinalizesAndOpens(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	assert.True(t, tr.processObservation(appObs("Code", "main.go - project"), 0))
	assert.True(t, tr.processObservation(appObs("Code", "main.go - project"), 30))
	assert.True(t, tr.processObservation(appObs("Terminal", "zsh"), 60))

	require.Len(t, store.sessions, 1)
	saved := store.sessions[0]
	assert.Equal(t, "Code", saved.AppName)
	assert.Equal(t, int64(0), saved.StartTime)
	assert.Equal(t, int64(60), saved.EndTime)
	assert.Equal(t, int64(60), saved.DurationSeconds)
	assert.Equal(t, model.CategoryApplication, saved.Category)

	current := tr.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, "Terminal", current.AppName)
	assert.Equal(t, int64(60), current.StartTime)

	events := drainEvents(tr)
	require.Len(t, events, 3)
	assert.Equal(t, model.SessionStarted, events[0].Kind)
	assert.Equal(t, model.SessionFinalized, events[1].Kind)
	assert.Equal(t, model.SessionStarted, events[2].Kind)
}

func TestShortSessionDiscarded(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	tr.processObservation(appObs("Code", "main.go"), 0)
	tr.processObservation(appObs("Terminal", "zsh"), 5)

	assert.Empty(t, store.sessions)

	events := drainEvents(tr)
	require.Len(t, events, 3)
	assert.Equal(t, model.SessionDiscarded, events[1].Kind)
	assert.Equal(t, int64(5), events[1].Session.DurationSeconds)
}

func TestMinimumDurationBoundary(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	// Exactly the minimum persists
	tr.processObservation(appObs("Code", "main.go"), 0)
	tr.processObservation(appObs("Terminal", "zsh"), 10)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, int64(10), store.sessions[0].DurationSeconds)

	// One second below does not
	tr.processObservation(appObs("Code", "main.go"), 100)
	tr.processObservation(appObs("Terminal", "zsh"), 109)
	assert.Len(t, store.sessions, 2) // Terminal@10..100 saved, Code@100 discarded
	assert.Equal(t, "Terminal", store.sessions[1].AppName)
}

func TestMinorTitleChangeContinuesSession(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	tr.processObservation(appObs("Code", "main.go - project"), 0)
	tr.processObservation(appObs("Code", "main.go - project •"), 30)

	assert.Empty(t, store.sessions)
	current := tr.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, int64(0), current.StartTime)
}

func TestLargeTitleChangeStartsNewSession(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	tr.processObservation(appObs("Preview", "Downloads"), 0)
	tr.processObservation(appObs("Preview", "project-budget.xlsx"), 45)

	require.Len(t, store.sessions, 1)
	assert.Equal(t, "Downloads", store.sessions[0].WindowTitle)

	current := tr.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, "project-budget.xlsx", current.WindowTitle)
	assert.Equal(t, int64(45), current.StartTime)
}

func TestTitleComparesAgainstLastObservation(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	// Each step is similar to the previous title even though the first and
	// last differ; the session drifts along without a boundary.
	tr.processObservation(appObs("Code", "chapter-one-draft.txt"), 0)
	tr.processObservation(appObs("Code", "chapter-two-draft.txt"), 30)
	tr.processObservation(appObs("Code", "chapter-two-final.txt"), 60)

	assert.Empty(t, store.sessions)
	current := tr.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, int64(0), current.StartTime)
}

func TestBrowserDomainChangeIsBoundary(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	tr.processObservation(siteObs("Google Chrome", "Pull requests", "github.com"), 0)
	// Title changes wildly, same domain: continuation
	tr.processObservation(siteObs("Google Chrome", "Completely different page", "github.com"), 30)
	// Domain changes: boundary
	tr.processObservation(siteObs("Google Chrome", "Front page", "reddit.com"), 60)

	require.Len(t, store.sessions, 1)
	saved := store.sessions[0]
	assert.Equal(t, "github.com", saved.Domain)
	assert.Equal(t, int64(60), saved.DurationSeconds)
	assert.Equal(t, model.CategoryWebsite, saved.Category)

	current := tr.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, "reddit.com", current.Domain)
}

func TestBlacklistedAppFinalizesWithoutOpening(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)
	blacklist := []string{"1Password"}
	require.NoError(t, tr.UpdateSettings(model.SettingsPatch{BlacklistedApps: &blacklist}))

	tr.processObservation(appObs("Code", "main.go"), 0)
	assert.False(t, tr.processObservation(appObs("1Password 8", "Vault"), 60))

	require.Len(t, store.sessions, 1)
	assert.Equal(t, "Code", store.sessions[0].AppName)
	assert.Nil(t, tr.CurrentSession())
}

func TestBlacklistedDomainFiltered(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)
	blacklist := []string{"bank.example.com"}
	require.NoError(t, tr.UpdateSettings(model.SettingsPatch{BlacklistedDomains: &blacklist}))

	assert.False(t, tr.processObservation(siteObs("Safari", "My account", "bank.example.com"), 0))
	assert.Nil(t, tr.CurrentSession())
	assert.Empty(t, store.sessions)
}

func TestTrackToggles(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	off := false
	require.NoError(t, tr.UpdateSettings(model.SettingsPatch{TrackBrowsers: &off}))
	assert.False(t, tr.processObservation(siteObs("Safari", "Page", "example.com"), 0))
	assert.True(t, tr.processObservation(appObs("Code", "main.go"), 0))

	tr2 := newTestTracker(&memStore{})
	require.NoError(t, tr2.UpdateSettings(model.SettingsPatch{TrackApplications: &off}))
	assert.False(t, tr2.processObservation(appObs("Code", "main.go"), 0))
	assert.True(t, tr2.processObservation(siteObs("Safari", "Page", "example.com"), 0))
}

func TestIdleExpiryFinalizes(t *testing.T) {
	store := &memStore{}
	tr := newTestTracker(store)

	tr.processObservation(appObs("Code", "main.go"), 0)
	tr.handleIdleExpiry(300)

	require.Len(t, store.sessions, 1)
	assert.Equal(t, int64(300), store.sessions[0].DurationSeconds)
	assert.Nil(t, tr.CurrentSession())

	// A second expiry with nothing open is a no-op
	tr.handleIdleExpiry(600)
	assert.Len(t, store.sessions, 1)
}

func TestConfirmIdleRearmsWhenUserActive(t *testing.T) {
	store := &memStore{}
	p := &idleProbe{idle: 100}
	tr := NewTracker(p, store, model.DefaultTrackingSettings())

	tr.processObservation(appObs("Code", "main.go"), 0)

	remaining, expire := tr.confirmIdle(300 * time.Second)
	assert.False(t, expire)
	assert.Equal(t, 200*time.Second, remaining)
}

func TestConfirmIdleExpiresWhenTrulyIdle(t *testing.T) {
	store := &memStore{}
	p := &idleProbe{idle: 400}
	tr := NewTracker(p, store, model.DefaultTrackingSettings())

	tr.processObservation(appObs("Code", "main.go"), 0)

	_, expire := tr.confirmIdle(300 * time.Second)
	assert.True(t, expire)
}

func TestConfirmIdleTrustsTimerOnProbeError(t *testing.T) {
	store := &memStore{}
	p := &idleProbe{idleErr: fmt.Errorf("not supported")}
	tr := NewTracker(p, store, model.DefaultTrackingSettings())

	tr.processObservation(appObs("Code", "main.go"), 0)

	_, expire := tr.confirmIdle(300 * time.Second)
	assert.True(t, expire)
}

func TestPersistFailureDropsSession(t *testing.T) {
	store := &memStore{failAdd: true}
	tr := newTestTracker(store)

	tr.processObservation(appObs("Code", "main.go"), 0)
	tr.processObservation(appObs("Terminal", "zsh"), 60)

	assert.Empty(t, store.sessions)
	assert.NotNil(t, tr.CurrentSession()) // the new session still opened

	// No SessionFinalized event for the dropped session
	for _, e := range drainEvents(tr) {
		assert.NotEqual(t, model.SessionFinalized, e.Kind)
	}
}

func TestUpdateSettingsRejectsInvalid(t *testing.T) {
	tr := newTestTracker(&memStore{})

	bad := -1
	err := tr.UpdateSettings(model.SettingsPatch{PollIntervalSeconds: &bad})
	assert.Error(t, err)
	assert.Equal(t, 30, tr.Settings().PollIntervalSeconds)
}

func TestUpdateSettingsMergesPartialPatch(t *testing.T) {
	tr := newTestTracker(&memStore{})

	interval := 5
	require.NoError(t, tr.UpdateSettings(model.SettingsPatch{PollIntervalSeconds: &interval}))

	cfg := tr.Settings()
	assert.Equal(t, 5, cfg.PollIntervalSeconds)
	assert.Equal(t, 300, cfg.IdleThresholdSeconds) // untouched
}

func TestFilterReason(t *testing.T) {
	settings := model.DefaultTrackingSettings()
	settings.BlacklistedApps = []string{"slack"}
	settings.BlacklistedDomains = []string{"reddit.com"}

	tests := []struct {
		name   string
		obs    *model.CurrentActivity
		reason string
	}{
		{
			name:   "allowed application",
			obs:    appObs("Code", "main.go"),
			reason: "",
		},
		{
			name:   "blacklisted app case-insensitive substring",
			obs:    appObs("Slack Desktop", "channel"),
			reason: "blacklisted application",
		},
		{
			name:   "blacklisted domain",
			obs:    siteObs("Safari", "Front page", "reddit.com"),
			reason: "blacklisted domain",
		},
		{
			name:   "allowed domain",
			obs:    siteObs("Safari", "Repo", "github.com"),
			reason: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reason, filterReason(tt.obs, settings))
		})
	}
}
