package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

func TestNewManagerWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	m, err := NewManager(dir)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultTrackingSettings(), m.Current())

	_, err = os.Stat(filepath.Join(dir, settingsFileName))
	assert.NoError(t, err)
}

func TestNewManagerLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := "enabled: false\npollIntervalSeconds: 10\nblacklistedApps:\n  - 1Password\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte(content), 0644))

	m, err := NewManager(dir)
	require.NoError(t, err)

	s := m.Current()
	assert.False(t, s.Enabled)
	assert.Equal(t, 10, s.PollIntervalSeconds)
	assert.Equal(t, []string{"1Password"}, s.BlacklistedApps)
	// keys absent from the file keep their defaults
	assert.Equal(t, 300, s.IdleThresholdSeconds)
}

func TestNewManagerMalformedFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte(":\nnot yaml {"), 0644))

	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTrackingSettings(), m.Current())
}

func TestNewManagerInvalidValuesKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("pollIntervalSeconds: -5\n"), 0644))

	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, 30, m.Current().PollIntervalSeconds)
}

func TestUpdateMergesAndPersists(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	interval := 15
	merged, err := m.Update(model.SettingsPatch{PollIntervalSeconds: &interval})
	require.NoError(t, err)
	assert.Equal(t, 15, merged.PollIntervalSeconds)
	assert.True(t, merged.Enabled) // untouched field survives

	reopened, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, 15, reopened.Current().PollIntervalSeconds)
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	bad := 0
	_, err = m.Update(model.SettingsPatch{IdleThresholdSeconds: &bad})
	assert.Error(t, err)
	assert.Equal(t, 300, m.Current().IdleThresholdSeconds)
}

func TestWatchPicksUpExternalEdit(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	defer m.Close()

	changed := make(chan model.TrackingSettings, 1)
	require.NoError(t, m.Watch(func(s model.TrackingSettings) {
		changed <- s
	}))

	content := "enabled: true\npollIntervalSeconds: 5\nidleThresholdSeconds: 60\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte(content), 0644))

	select {
	case s := <-changed:
		assert.Equal(t, 5, s.PollIntervalSeconds)
		assert.Equal(t, 60, s.IdleThresholdSeconds)
	case <-time.After(3 * time.Second):
		t.Fatal("settings change was not observed")
	}

	assert.Equal(t, 5, m.Current().PollIntervalSeconds)
}

func TestWatchIgnoresMalformedEdit(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	defer m.Close()

	changed := make(chan model.TrackingSettings, 1)
	require.NoError(t, m.Watch(func(s model.TrackingSettings) {
		changed <- s
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("{broken"), 0644))

	select {
	case <-changed:
		t.Fatal("malformed edit should not trigger a change")
	case <-time.After(500 * time.Millisecond):
	}

	assert.Equal(t, model.DefaultTrackingSettings(), m.Current())
}
