package probe

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

// Separator used by every platform script when returning window info as a
// single delimited string: app|||title|||pid
const fieldSeparator = "|||"

// Probe queries the OS for the foreground application and, for browsers,
// the active tab. Implementations never panic and never return an error
// from Capture: any underlying failure is logged and surfaced as nil.
type Probe interface {
	// Capture returns the current foreground activity, or nil when the
	// OS query fails or nothing qualifies.
	Capture() *model.CurrentActivity

	// SystemIdleSeconds returns the true OS input-idle time in whole
	// seconds, independent of the tracker's software idle timer.
	SystemIdleSeconds() (int64, error)

	// Platform names the implementation (darwin, linux, windows, none)
	Platform() string
}

// New returns the probe for the current platform. On unsupported platforms
// the returned probe is a permanent no-op that logs a single warning.
func New() Probe {
	return newPlatformProbe()
}

// browserApps maps known browser process/application names; matching is a
// case-insensitive substring check so that "Google Chrome", "chrome.exe"
// and "google-chrome-stable" all hit the "chrome" entry.
var browserApps = []string{
	"chrome",
	"chromium",
	"safari",
	"firefox",
	"edge",
	"brave",
	"opera",
	"vivaldi",
	"arc",
}

// IsBrowser reports whether the application name belongs to a known browser
func IsBrowser(appName string) bool {
	name := strings.ToLower(appName)
	for _, b := range browserApps {
		if strings.Contains(name, b) {
			return true
		}
	}
	return false
}

// parseWindowInfo splits the app|||title|||pid contract string
func parseWindowInfo(out string) (appName, title string, pid int, err error) {
	out = strings.TrimRight(out, "\r\n")
	parts := strings.Split(out, fieldSeparator)
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("unexpected window info output: %q", out)
	}

	appName = strings.TrimSpace(parts[0])
	title = strings.TrimSpace(parts[1])
	if appName == "" {
		return "", "", 0, fmt.Errorf("empty application name in window info: %q", out)
	}

	if pidStr := strings.TrimSpace(parts[2]); pidStr != "" {
		pid, err = strconv.Atoi(pidStr)
		if err != nil {
			// A missing pid is not worth dropping the observation for
			util.LogDebugf("Unparseable pid %q in window info", pidStr)
			pid, err = 0, nil
		}
	}

	return appName, title, pid, nil
}

// buildActivity assembles an observation from raw window info, resolving
// browser URL/domain via direct query first and title heuristics second.
// Returns nil when the observation is an internal browser page.
func buildActivity(appName, title string, pid int, now int64, directURL func() (string, error)) *model.CurrentActivity {
	activity := &model.CurrentActivity{
		AppName:     appName,
		WindowTitle: title,
		ProcessID:   pid,
		IsBrowser:   IsBrowser(appName),
		Timestamp:   now,
	}

	if !activity.IsBrowser {
		return activity
	}

	var rawURL string
	if directURL != nil {
		url, err := directURL()
		if err != nil {
			util.LogDebugf("Direct URL query failed for %s: %v", appName, err)
		} else {
			rawURL = strings.TrimSpace(url)
		}
	}

	if rawURL != "" {
		if IsInternalURL(rawURL) {
			// New-tab and extension pages carry no activity content
			return activity
		}
		activity.URL = rawURL
		activity.Domain = StripWWW(DomainFromURL(rawURL))
		return activity
	}

	// Fall back to heuristic extraction from the window title
	if domain, url := ExtractFromTitle(title); domain != "" {
		activity.Domain = StripWWW(domain)
		activity.URL = url
	}

	return activity
}

// unsupportedProbe is returned on platforms without a window query.
// Tracking continues in a permanently no-op state.
type unsupportedProbe struct {
	warnOnce sync.Once
}

func (p *unsupportedProbe) Capture() *model.CurrentActivity {
	p.warnOnce.Do(func() {
		util.LogWarn("Active window detection is not supported on this platform, tracking is disabled")
	})
	return nil
}

func (p *unsupportedProbe) SystemIdleSeconds() (int64, error) {
	return 0, fmt.Errorf("system idle time is not supported on this platform")
}

func (p *unsupportedProbe) Platform() string {
	return "none"
}
