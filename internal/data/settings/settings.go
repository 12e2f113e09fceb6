// Package settings loads tracker settings from a YAML file and watches it
// for external edits.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

const settingsFileName = "settings.yaml"

// Manager owns the settings file. All reads and writes go through it so the
// in-memory view and the file never drift.
type Manager struct {
	path string

	mu      sync.RWMutex
	current model.TrackingSettings

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewManager loads settings from baseDir, writing the defaults when no file
// exists yet. A malformed or invalid file falls back to defaults with a
// warning rather than failing startup.
func NewManager(baseDir string) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	m := &Manager{
		path:    filepath.Join(baseDir, settingsFileName),
		current: model.DefaultTrackingSettings(),
	}

	loaded, err := m.readFile()
	switch {
	case os.IsNotExist(err):
		if err := m.writeFile(m.current); err != nil {
			return nil, fmt.Errorf("write default settings: %w", err)
		}
	case err != nil:
		util.LogWarnf("Ignoring unreadable settings file %s: %v", m.path, err)
	default:
		m.current = loaded
	}

	return m, nil
}

func (m *Manager) readFile() (model.TrackingSettings, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return model.TrackingSettings{}, err
	}

	// Unknown keys are tolerated; missing keys keep their defaults.
	s := model.DefaultTrackingSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return model.TrackingSettings{}, fmt.Errorf("parse %s: %w", m.path, err)
	}
	if err := s.Validate(); err != nil {
		return model.TrackingSettings{}, fmt.Errorf("invalid %s: %w", m.path, err)
	}
	return s, nil
}

func (m *Manager) writeFile(s model.TrackingSettings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}

// Path returns the settings file location
func (m *Manager) Path() string {
	return m.path
}

// Current returns a copy of the active settings
func (m *Manager) Current() model.TrackingSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update merges a partial patch into the active settings, validates the
// result, and persists it. The previous settings stay in effect when the
// merged result is invalid.
func (m *Manager) Update(patch model.SettingsPatch) (model.TrackingSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged := m.current.Merge(patch)
	if err := merged.Validate(); err != nil {
		return m.current, err
	}

	if err := m.writeFile(merged); err != nil {
		return m.current, err
	}

	m.current = merged
	return merged, nil
}

// Watch starts watching the settings file and invokes onChange with the
// freshly validated settings whenever an external edit lands. Edits that
// fail to parse or validate are logged and ignored.
func (m *Manager) Watch(onChange func(model.TrackingSettings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors and our own atomic saves
	// replace the file, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		watcher.Close()
		return err
	}

	m.watcher = watcher
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})

	go m.watchLoop(onChange)
	return nil
}

func (m *Manager) watchLoop(onChange func(model.TrackingSettings)) {
	defer close(m.doneCh)

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Name != m.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			m.handleFileChange(onChange)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			util.LogWarnf("Settings watcher error: %v", err)
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) handleFileChange(onChange func(model.TrackingSettings)) {
	loaded, err := m.readFile()
	if err != nil {
		util.LogWarnf("Ignoring settings change: %v", err)
		return
	}

	m.mu.Lock()
	if reflect.DeepEqual(loaded, m.current) {
		m.mu.Unlock()
		return
	}
	m.current = loaded
	m.mu.Unlock()

	util.LogInfof("Settings reloaded from %s", m.path)
	if onChange != nil {
		onChange(loaded)
	}
}

// Close stops the watcher, if one was started
func (m *Manager) Close() {
	if m.watcher == nil {
		return
	}
	close(m.stopCh)
	m.watcher.Close()
	<-m.doneCh
	m.watcher = nil
}
