// Package store persists finished activity sessions as a JSON file with an
// in-memory index. Writes go through a temp file and rename so a crash
// mid-write never corrupts the data file.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

const dataFileName = "sessions.json"

type storeFile struct {
	Sessions []model.ActivitySession `json:"sessions"`
}

// SessionStore is a file-backed session store
type SessionStore struct {
	path string

	mu       sync.RWMutex
	sessions []model.ActivitySession
}

// NewSessionStore opens (or creates) the session store under baseDir
func NewSessionStore(baseDir string) (*SessionStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	s := &SessionStore{
		path:     filepath.Join(baseDir, dataFileName),
		sessions: []model.ActivitySession{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SessionStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var file storeFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("corrupt session store %s: %w", s.path, err)
	}

	s.sessions = file.Sessions
	if s.sessions == nil {
		s.sessions = []model.ActivitySession{}
	}

	util.LogDebugf("Loaded %d sessions from %s", len(s.sessions), s.path)
	return nil
}

// save writes the store atomically; callers hold the write lock
func (s *SessionStore) save() error {
	data, err := sonic.MarshalIndent(storeFile{Sessions: s.sessions}, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// AddSession persists a finished session and returns its assigned id.
// Sessions must arrive complete: an open session is a caller bug.
func (s *SessionStore) AddSession(session model.ActivitySession) (string, error) {
	if session.EndTime == 0 || session.DurationSeconds == 0 {
		return "", fmt.Errorf("refusing to persist an open session for %s", session.AppName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	s.sessions = append(s.sessions, session)

	if err := s.save(); err != nil {
		s.sessions = s.sessions[:len(s.sessions)-1]
		return "", err
	}

	return session.ID, nil
}

// UpdateSession rewrites the end time and duration of a stored session.
// Returns false when the id is unknown.
func (s *SessionStore) UpdateSession(id string, endTime, duration int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		prev := s.sessions[i]
		s.sessions[i].EndTime = endTime
		s.sessions[i].DurationSeconds = duration
		if err := s.save(); err != nil {
			s.sessions[i] = prev
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// GetSessions returns stored sessions, most recent first. A non-positive
// limit returns everything.
func (s *SessionStore) GetSessions(limit int) ([]model.ActivitySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.ActivitySession, len(s.sessions))
	copy(result, s.sessions)

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime > result[j].StartTime
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetTopApplications aggregates application sessions by name, ordered by
// total duration.
func (s *SessionStore) GetTopApplications(limit int) ([]model.AppUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]*model.AppUsage)
	for _, session := range s.sessions {
		if session.Category != model.CategoryApplication {
			continue
		}
		usage, ok := totals[session.AppName]
		if !ok {
			usage = &model.AppUsage{Name: session.AppName}
			totals[session.AppName] = usage
		}
		usage.TotalDuration += session.DurationSeconds
		usage.SessionCount++
	}

	result := make([]model.AppUsage, 0, len(totals))
	for _, usage := range totals {
		result = append(result, *usage)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalDuration > result[j].TotalDuration
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetTopWebsites aggregates website sessions by domain, ordered by total
// duration. Sessions without an extracted domain are grouped under the
// browser name.
func (s *SessionStore) GetTopWebsites(limit int) ([]model.SiteUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]*model.SiteUsage)
	for _, session := range s.sessions {
		if session.Category != model.CategoryWebsite {
			continue
		}
		domain := session.Domain
		if domain == "" {
			domain = session.AppName
		}
		usage, ok := totals[domain]
		if !ok {
			usage = &model.SiteUsage{Domain: domain}
			totals[domain] = usage
		}
		usage.TotalDuration += session.DurationSeconds
		usage.SessionCount++
	}

	result := make([]model.SiteUsage, 0, len(totals))
	for _, usage := range totals {
		result = append(result, *usage)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalDuration > result[j].TotalDuration
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// PruneOlderThan removes sessions that ended more than retentionDays ago,
// returning how many were dropped. A zero retention keeps everything.
func (s *SessionStore) PruneOlderThan(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.sessions[:0]
	for _, session := range s.sessions {
		if session.EndTime >= cutoff {
			kept = append(kept, session)
		}
	}

	dropped := len(s.sessions) - len(kept)
	if dropped == 0 {
		return 0, nil
	}

	s.sessions = kept
	if err := s.save(); err != nil {
		return 0, err
	}

	util.LogInfof("Pruned %d sessions older than %d days", dropped, retentionDays)
	return dropped, nil
}
