package tracker

import (
	"strings"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

// filterReason returns a non-empty reason when the observation must not be
// tracked: a disabled category, a blacklisted application name, or a
// blacklisted domain. Matching is a case-insensitive substring check, so a
// blacklist entry "slack" covers both "Slack" and "Slack Helper".
func filterReason(obs *model.CurrentActivity, settings model.TrackingSettings) string {
	if obs.IsBrowser && !settings.TrackBrowsers {
		return "browser tracking disabled"
	}
	if !obs.IsBrowser && !settings.TrackApplications {
		return "application tracking disabled"
	}

	if matchesBlacklist(obs.AppName, settings.BlacklistedApps) {
		return "blacklisted application"
	}
	if obs.IsBrowser && obs.Domain != "" && matchesBlacklist(obs.Domain, settings.BlacklistedDomains) {
		return "blacklisted domain"
	}

	return ""
}

func matchesBlacklist(value string, blacklist []string) bool {
	lower := strings.ToLower(value)
	for _, entry := range blacklist {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" && strings.Contains(lower, entry) {
			return true
		}
	}
	return false
}
