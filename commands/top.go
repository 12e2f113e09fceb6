package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/core/probe"
	"github.com/penwyp/go-activity-tracker/internal/core/tracker"
	"github.com/penwyp/go-activity-tracker/internal/presentation/display"
	"github.com/penwyp/go-activity-tracker/internal/presentation/interaction"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

var (
	topRefreshRate int
	topLimit       int
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Monitor current activity in real-time",
	Long: `Similar to the Linux top command: runs the tracker and displays the
current session plus the most-used applications and websites, refreshing
in place.

Keys: q quit, t layout, p pause, r refresh, h help.`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVar(&topRefreshRate, "refresh-rate", 2,
		"Display refresh rate in seconds")
	topCmd.Flags().IntVar(&topLimit, "limit", 8,
		"Rows per usage section")
}

func runTop(cmd *cobra.Command, args []string) error {
	initRuntime()

	if topRefreshRate < 1 {
		return fmt.Errorf("refresh-rate must be at least 1 second")
	}

	manager, st, err := openData()
	if err != nil {
		return err
	}
	defer manager.Close()

	p := probe.New()
	t := tracker.NewTracker(p, st, manager.Current())
	if manager.Current().Enabled {
		t.Start()
	}
	defer t.Stop()

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("initialize keyboard: %w", err)
	}
	defer keyboard.Close()

	td := display.NewTerminalDisplay()
	td.EnterAlternateScreen()
	defer td.ExitAlternateScreen()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(topRefreshRate) * time.Second)
	defer ticker.Stop()

	paused := false
	status := ""

	render := func() {
		td.Render(liveStats(t, paused, status))
	}
	render()

	for {
		select {
		case <-sigChan:
			return nil
		case <-ticker.C:
			render()
		case event := <-keyboard.Events():
			quit, refresh := false, false
			switch {
			case event.Type == interaction.KeyEscape, event.Key == 'q', event.Key == 3:
				quit = true
			case event.Key == 't':
				status = "Layout: " + td.CycleLayout()
				refresh = true
			case event.Key == 'p':
				paused = !paused
				enabled := !paused
				if err := t.UpdateSettings(model.SettingsPatch{Enabled: &enabled}); err != nil {
					util.LogWarnf("Pause toggle rejected: %v", err)
				}
				refresh = true
			case event.Key == 'r':
				status = ""
				refresh = true
			case event.Key == 'h':
				td.ToggleHelp()
				refresh = true
			}
			if quit {
				return nil
			}
			if refresh {
				render()
			}
		}
	}
}

// liveStats assembles the snapshot for one frame
func liveStats(t *tracker.Tracker, paused bool, status string) *model.LiveStats {
	cfg := t.Settings()

	stats := &model.LiveStats{
		Tracking:             t.IsTracking(),
		Paused:               paused,
		PollIntervalSeconds:  cfg.PollIntervalSeconds,
		IdleThresholdSeconds: cfg.IdleThresholdSeconds,
		Current:              t.CurrentSession(),
		StatusMessage:        status,
	}

	if apps, err := t.TopApplications(topLimit); err == nil {
		stats.TopApps = apps
	}
	if sites, err := t.TopWebsites(topLimit); err == nil {
		stats.TopSites = sites
	}

	return stats
}
