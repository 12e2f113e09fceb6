package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

func finishedSession(app, title, category, domain string, start, duration int64) model.ActivitySession {
	return model.ActivitySession{
		AppName:         app,
		WindowTitle:     title,
		Category:        category,
		Domain:          domain,
		StartTime:       start,
		EndTime:         start + duration,
		DurationSeconds: duration,
		IsBrowser:       category == model.CategoryWebsite,
	}
}

func TestAddSessionAssignsID(t *testing.T) {
	s, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	id, err := s.AddSession(finishedSession("Code", "main.go", model.CategoryApplication, "", 1000, 60))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	sessions, err := s.GetSessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
}

func TestAddSessionRejectsOpenSession(t *testing.T) {
	s, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.AddSession(model.ActivitySession{AppName: "Code", StartTime: 1000})
	assert.Error(t, err)
}

func TestStoreReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSessionStore(dir)
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Code", "main.go", model.CategoryApplication, "", 1000, 120))
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Chrome", "GitHub", model.CategoryWebsite, "github.com", 2000, 300))
	require.NoError(t, err)

	reopened, err := NewSessionStore(dir)
	require.NoError(t, err)

	sessions, err := reopened.GetSessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Chrome", sessions[0].AppName) // most recent first
	assert.Equal(t, "Code", sessions[1].AppName)
}

func TestNewSessionStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataFileName), []byte("{not json"), 0644))

	_, err := NewSessionStore(dir)
	assert.Error(t, err)
}

func TestUpdateSession(t *testing.T) {
	s, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	id, err := s.AddSession(finishedSession("Code", "main.go", model.CategoryApplication, "", 1000, 60))
	require.NoError(t, err)

	found, err := s.UpdateSession(id, 1300, 300)
	require.NoError(t, err)
	assert.True(t, found)

	sessions, err := s.GetSessions(1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(1300), sessions[0].EndTime)
	assert.Equal(t, int64(300), sessions[0].DurationSeconds)

	found, err = s.UpdateSession("missing", 1300, 300)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetSessionsLimit(t *testing.T) {
	s, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	for i := int64(0); i < 5; i++ {
		_, err := s.AddSession(finishedSession("Code", "main.go", model.CategoryApplication, "", 1000+i*100, 60))
		require.NoError(t, err)
	}

	sessions, err := s.GetSessions(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, int64(1400), sessions[0].StartTime)
}

func TestTopApplicationsAggregation(t *testing.T) {
	s, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.AddSession(finishedSession("Code", "main.go", model.CategoryApplication, "", 1000, 120))
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Code", "store.go", model.CategoryApplication, "", 2000, 180))
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Terminal", "zsh", model.CategoryApplication, "", 3000, 60))
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Chrome", "GitHub", model.CategoryWebsite, "github.com", 4000, 600))
	require.NoError(t, err)

	apps, err := s.GetTopApplications(10)
	require.NoError(t, err)
	require.Len(t, apps, 2) // website sessions excluded

	assert.Equal(t, "Code", apps[0].Name)
	assert.Equal(t, int64(300), apps[0].TotalDuration)
	assert.Equal(t, 2, apps[0].SessionCount)
	assert.Equal(t, "Terminal", apps[1].Name)
}

func TestTopWebsitesAggregation(t *testing.T) {
	s, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.AddSession(finishedSession("Chrome", "GitHub", model.CategoryWebsite, "github.com", 1000, 300))
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Safari", "Pull requests", model.CategoryWebsite, "github.com", 2000, 200))
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Chrome", "Untitled", model.CategoryWebsite, "", 3000, 50))
	require.NoError(t, err)

	sites, err := s.GetTopWebsites(10)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "github.com", sites[0].Domain)
	assert.Equal(t, int64(500), sites[0].TotalDuration)
	assert.Equal(t, 2, sites[0].SessionCount)
	assert.Equal(t, "Chrome", sites[1].Domain) // no domain falls back to browser name
}

func TestPruneOlderThan(t *testing.T) {
	s, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	now := time.Now().Unix()
	old := now - 120*24*3600

	_, err = s.AddSession(finishedSession("Code", "old", model.CategoryApplication, "", old, 60))
	require.NoError(t, err)
	_, err = s.AddSession(finishedSession("Code", "recent", model.CategoryApplication, "", now-3600, 60))
	require.NoError(t, err)

	dropped, err := s.PruneOlderThan(90)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)

	sessions, err := s.GetSessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "recent", sessions[0].WindowTitle)

	dropped, err = s.PruneOlderThan(0)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
}
