package model

import (
	"fmt"
)

// TrackingSettings controls the tracking engine. Changes take effect
// immediately: interval changes restart the poll loop, Enabled toggles
// start/stop tracking.
type TrackingSettings struct {
	Enabled              bool     `yaml:"enabled" json:"enabled"`
	PollIntervalSeconds  int      `yaml:"pollIntervalSeconds" json:"pollIntervalSeconds"`
	IdleThresholdSeconds int      `yaml:"idleThresholdSeconds" json:"idleThresholdSeconds"`
	TrackBrowsers        bool     `yaml:"trackBrowsers" json:"trackBrowsers"`
	TrackApplications    bool     `yaml:"trackApplications" json:"trackApplications"`
	BlacklistedApps      []string `yaml:"blacklistedApps" json:"blacklistedApps"`
	BlacklistedDomains   []string `yaml:"blacklistedDomains" json:"blacklistedDomains"`
	DataRetentionDays    int      `yaml:"dataRetentionDays" json:"dataRetentionDays"`
}

// SettingsPatch is a partial settings update; nil fields keep their current
// value. Slice fields replace the whole list when present.
type SettingsPatch struct {
	Enabled              *bool     `yaml:"enabled" json:"enabled,omitempty"`
	PollIntervalSeconds  *int      `yaml:"pollIntervalSeconds" json:"pollIntervalSeconds,omitempty"`
	IdleThresholdSeconds *int      `yaml:"idleThresholdSeconds" json:"idleThresholdSeconds,omitempty"`
	TrackBrowsers        *bool     `yaml:"trackBrowsers" json:"trackBrowsers,omitempty"`
	TrackApplications    *bool     `yaml:"trackApplications" json:"trackApplications,omitempty"`
	BlacklistedApps      *[]string `yaml:"blacklistedApps" json:"blacklistedApps,omitempty"`
	BlacklistedDomains   *[]string `yaml:"blacklistedDomains" json:"blacklistedDomains,omitempty"`
	DataRetentionDays    *int      `yaml:"dataRetentionDays" json:"dataRetentionDays,omitempty"`
}

// DefaultTrackingSettings returns the default configuration
func DefaultTrackingSettings() TrackingSettings {
	return TrackingSettings{
		Enabled:              true,
		PollIntervalSeconds:  30,
		IdleThresholdSeconds: 300,
		TrackBrowsers:        true,
		TrackApplications:    true,
		BlacklistedApps:      []string{},
		BlacklistedDomains:   []string{},
		DataRetentionDays:    90,
	}
}

// Validate rejects values that would break the polling loops. A zero or
// negative interval would spin or never fire; callers keep the previous
// settings when this fails.
func (s TrackingSettings) Validate() error {
	if s.PollIntervalSeconds <= 0 {
		return fmt.Errorf("pollIntervalSeconds must be positive, got %d", s.PollIntervalSeconds)
	}
	if s.IdleThresholdSeconds <= 0 {
		return fmt.Errorf("idleThresholdSeconds must be positive, got %d", s.IdleThresholdSeconds)
	}
	if s.DataRetentionDays < 0 {
		return fmt.Errorf("dataRetentionDays must not be negative, got %d", s.DataRetentionDays)
	}
	return nil
}

// Merge applies a patch and returns the merged settings; the receiver is not
// modified.
func (s TrackingSettings) Merge(patch SettingsPatch) TrackingSettings {
	merged := s
	if patch.Enabled != nil {
		merged.Enabled = *patch.Enabled
	}
	if patch.PollIntervalSeconds != nil {
		merged.PollIntervalSeconds = *patch.PollIntervalSeconds
	}
	if patch.IdleThresholdSeconds != nil {
		merged.IdleThresholdSeconds = *patch.IdleThresholdSeconds
	}
	if patch.TrackBrowsers != nil {
		merged.TrackBrowsers = *patch.TrackBrowsers
	}
	if patch.TrackApplications != nil {
		merged.TrackApplications = *patch.TrackApplications
	}
	if patch.BlacklistedApps != nil {
		merged.BlacklistedApps = append([]string(nil), (*patch.BlacklistedApps)...)
	}
	if patch.BlacklistedDomains != nil {
		merged.BlacklistedDomains = append([]string(nil), (*patch.BlacklistedDomains)...)
	}
	if patch.DataRetentionDays != nil {
		merged.DataRetentionDays = *patch.DataRetentionDays
	}
	return merged
}
