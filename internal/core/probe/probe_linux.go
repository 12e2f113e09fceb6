//go:build linux

package probe

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

// windowInfoScript resolves the active X11 window and prints
// app|||title|||pid in a single shell invocation.
const windowInfoScript = `id=$(xdotool getactivewindow) || exit 1
title=$(xdotool getwindowname "$id" 2>/dev/null)
pid=$(xdotool getwindowpid "$id" 2>/dev/null)
cls=$(xprop -id "$id" WM_CLASS 2>/dev/null | sed -n 's/.*"\(.*\)"$/\1/p')
printf '%s|||%s|||%s' "$cls" "$title" "$pid"`

type linuxProbe struct{}

func newPlatformProbe() Probe {
	return &linuxProbe{}
}

func (p *linuxProbe) Platform() string {
	return "linux"
}

func (p *linuxProbe) Capture() *model.CurrentActivity {
	out, err := exec.Command("sh", "-c", windowInfoScript).Output()
	if err != nil {
		util.LogDebugf("Active window query failed (is xdotool installed?): %v", err)
		return nil
	}

	appName, title, pid, err := parseWindowInfo(string(out))
	if err != nil {
		util.LogDebugf("Window info parse failed: %v", err)
		return nil
	}

	// No Linux browser exposes its active tab over a scripted query, so
	// browser observations rely on title heuristics alone.
	return buildActivity(appName, title, pid, time.Now().Unix(), nil)
}

// SystemIdleSeconds prefers xprintidle, falling back to xssstate; both
// report milliseconds, normalized here to whole seconds.
func (p *linuxProbe) SystemIdleSeconds() (int64, error) {
	if out, err := exec.Command("xprintidle").Output(); err == nil {
		ms, perr := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
		if perr != nil {
			return 0, perr
		}
		return ms / 1000, nil
	}

	out, err := exec.Command("xssstate", "-i").Output()
	if err != nil {
		return 0, fmt.Errorf("no idle-time tool available (tried xprintidle, xssstate): %w", err)
	}
	ms, perr := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if perr != nil {
		return 0, perr
	}
	return ms / 1000, nil
}
