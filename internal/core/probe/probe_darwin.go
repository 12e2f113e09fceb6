//go:build darwin

package probe

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

// windowInfoScript returns app|||title|||pid in one osascript invocation
const windowInfoScript = `tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	set appPid to unix id of frontApp
	set windowTitle to ""
	try
		set windowTitle to name of front window of frontApp
	end try
end tell
return appName & "|||" & windowTitle & "|||" & appPid`

// Browsers that expose the active tab URL to AppleScript, keyed by a
// lowercase substring of the application name.
var tabURLScripts = map[string]string{
	"safari":  `tell application "Safari" to return URL of front document`,
	"chrome":  `tell application "Google Chrome" to return URL of active tab of front window`,
	"brave":   `tell application "Brave Browser" to return URL of active tab of front window`,
	"edge":    `tell application "Microsoft Edge" to return URL of active tab of front window`,
	"arc":     `tell application "Arc" to return URL of active tab of front window`,
	"vivaldi": `tell application "Vivaldi" to return URL of active tab of front window`,
	"opera":   `tell application "Opera" to return URL of active tab of front window`,
}

// HIDIdleTime is reported in nanoseconds since last input
var hidIdleRe = regexp.MustCompile(`"HIDIdleTime"\s*=\s*([0-9]+)`)

type darwinProbe struct{}

func newPlatformProbe() Probe {
	return &darwinProbe{}
}

func (p *darwinProbe) Platform() string {
	return "darwin"
}

func (p *darwinProbe) Capture() *model.CurrentActivity {
	out, err := exec.Command("osascript", "-e", windowInfoScript).Output()
	if err != nil {
		util.LogDebugf("osascript window query failed: %v", err)
		return nil
	}

	appName, title, pid, err := parseWindowInfo(string(out))
	if err != nil {
		util.LogDebugf("Window info parse failed: %v", err)
		return nil
	}

	return buildActivity(appName, title, pid, time.Now().Unix(), func() (string, error) {
		return p.activeTabURL(appName)
	})
}

// activeTabURL queries the frontmost browser for its active tab URL.
// Firefox and others without AppleScript tab access return an error so the
// caller falls back to title heuristics.
func (p *darwinProbe) activeTabURL(appName string) (string, error) {
	name := strings.ToLower(appName)
	for key, script := range tabURLScripts {
		if strings.Contains(name, key) {
			out, err := exec.Command("osascript", "-e", script).Output()
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(out)), nil
		}
	}
	return "", fmt.Errorf("browser %s does not expose its active tab", appName)
}

// SystemIdleSeconds reads HIDIdleTime from the IOHIDSystem registry entry,
// reported in nanoseconds and normalized to whole seconds.
func (p *darwinProbe) SystemIdleSeconds() (int64, error) {
	out, err := exec.Command("/usr/sbin/ioreg", "-c", "IOHIDSystem").Output()
	if err != nil {
		return 0, err
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}
		if m := hidIdleRe.FindStringSubmatch(line); len(m) == 2 {
			ns, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return 0, err
			}
			return ns / int64(time.Second), nil
		}
	}

	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}
