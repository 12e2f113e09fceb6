package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/core/probe"
	"github.com/penwyp/go-activity-tracker/internal/core/tracker"
	"github.com/penwyp/go-activity-tracker/internal/data/settings"
	"github.com/penwyp/go-activity-tracker/internal/data/store"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path
	dataDir string

	// Output related
	timezone string

	// Startup overrides for the settings file
	pollInterval  int
	idleThreshold int

	rootCmd = &cobra.Command{
		Use:   "go-activity-tracker [flags]",
		Short: "Active-window time tracking daemon",
		Long: `go-activity-tracker records which application or website has focus,
segments the observations into sessions, and stores them for reporting.

The root command runs the tracking daemon in the foreground until
interrupted. Settings live in a YAML file under the data directory and
are picked up live when edited.

Examples:
  go-activity-tracker                        # Run the daemon with stored settings
  go-activity-tracker --interval 10          # Poll the active window every 10 seconds
  go-activity-tracker --idle-threshold 120   # Close sessions after 2 minutes idle
  go-activity-tracker top                    # Live view of current activity
  go-activity-tracker report --output json   # Usage report from stored sessions
  go-activity-tracker validate activities.json --check-overlap`,
		RunE: runTrack,
	}
)

const (
	defaultLogFile = "~/.go-activity-tracker/logs/app.log"
	defaultDataDir = "~/.go-activity-tracker"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir,
		"Directory for sessions, settings and logs")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().IntVar(&pollInterval, "interval", 0,
		"Override the poll interval in seconds (persists to settings)")
	rootCmd.Flags().IntVar(&idleThreshold, "idle-threshold", 0,
		"Override the idle threshold in seconds (persists to settings)")
}

func runTrack(cmd *cobra.Command, args []string) error {
	initRuntime()

	manager, st, err := openData()
	if err != nil {
		return err
	}

	// Apply startup overrides before the tracker sees the settings
	patch := model.SettingsPatch{}
	if pollInterval > 0 {
		patch.PollIntervalSeconds = &pollInterval
	}
	if idleThreshold > 0 {
		patch.IdleThresholdSeconds = &idleThreshold
	}
	if patch.PollIntervalSeconds != nil || patch.IdleThresholdSeconds != nil {
		if _, err := manager.Update(patch); err != nil {
			return fmt.Errorf("invalid settings override: %w", err)
		}
	}

	cfg := manager.Current()
	if dropped, err := st.PruneOlderThan(cfg.DataRetentionDays); err != nil {
		util.LogWarnf("Retention prune failed: %v", err)
	} else if dropped > 0 {
		util.LogInfof("Retention: removed %d expired sessions", dropped)
	}

	p := probe.New()
	t := tracker.NewTracker(p, st, cfg)

	if err := manager.Watch(func(s model.TrackingSettings) {
		if err := t.UpdateSettings(settingsAsPatch(s)); err != nil {
			util.LogWarnf("Settings change rejected: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}
	defer manager.Close()

	go logSessionEvents(t)

	if cfg.Enabled {
		t.Start()
		util.LogInfof("Tracking started on %s (poll %ds, idle %ds)",
			p.Platform(), cfg.PollIntervalSeconds, cfg.IdleThresholdSeconds)
	} else {
		util.LogInfo("Tracking is disabled in settings; waiting for changes")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	util.LogInfo("Shutting down")
	t.Stop()
	return nil
}

// logSessionEvents drains the tracker's event stream into the log
func logSessionEvents(t *tracker.Tracker) {
	for event := range t.Events() {
		switch event.Kind {
		case model.SessionStarted:
			util.LogInfof("Session started: %s", event.Session.Label())
		case model.SessionFinalized:
			util.LogInfof("Session saved: %s (%s)",
				event.Session.Label(), util.FormatSeconds(event.Session.DurationSeconds))
		case model.SessionDiscarded:
			util.LogDebugf("Session discarded (too short): %s", event.Session.Label())
		}
	}
}

// settingsAsPatch turns a full settings value into a patch touching every field
func settingsAsPatch(s model.TrackingSettings) model.SettingsPatch {
	return model.SettingsPatch{
		Enabled:              &s.Enabled,
		PollIntervalSeconds:  &s.PollIntervalSeconds,
		IdleThresholdSeconds: &s.IdleThresholdSeconds,
		TrackBrowsers:        &s.TrackBrowsers,
		TrackApplications:    &s.TrackApplications,
		BlacklistedApps:      &s.BlacklistedApps,
		BlacklistedDomains:   &s.BlacklistedDomains,
		DataRetentionDays:    &s.DataRetentionDays,
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// Shared setup helpers

func initRuntime() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
	util.InitializeTimeProvider(timezone)
}

// openData opens the settings manager and session store under the data dir
func openData() (*settings.Manager, *store.SessionStore, error) {
	dir := expandPath(dataDir)
	if err := ensureDir(dir); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	manager, err := settings.NewManager(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open settings: %w", err)
	}

	st, err := store.NewSessionStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	return manager, st, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
