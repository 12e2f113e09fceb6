package model

// CurrentActivity is one point-in-time snapshot of the foreground
// application or browser tab. Produced fresh on each poll and never mutated.
type CurrentActivity struct {
	AppName     string `json:"appName"`
	WindowTitle string `json:"windowTitle"`
	ProcessID   int    `json:"processId"`
	IsBrowser   bool   `json:"isBrowser"`
	Domain      string `json:"domain,omitempty"`
	URL         string `json:"url,omitempty"`
	Timestamp   int64  `json:"timestamp"` // Unix timestamp
}

// Session categories
const (
	CategoryApplication = "application"
	CategoryWebsite     = "website"
)

// ActivitySession is a contiguous time interval attributed to one
// application or website. EndTime and DurationSeconds are zero while the
// session is open; a session is only ever persisted with both set.
type ActivitySession struct {
	ID              string `json:"id,omitempty"`
	AppName         string `json:"appName"`
	WindowTitle     string `json:"windowTitle,omitempty"`
	Category        string `json:"category"` // "application" or "website"
	Domain          string `json:"domain,omitempty"`
	URL             string `json:"url,omitempty"`
	StartTime       int64  `json:"startTime"`
	EndTime         int64  `json:"endTime,omitempty"`
	DurationSeconds int64  `json:"durationSeconds,omitempty"`
	IsBrowser       bool   `json:"isBrowser"`
}

// Label returns the display identity of the session: domain for website
// sessions, application name otherwise.
func (s *ActivitySession) Label() string {
	if s.IsBrowser && s.Domain != "" {
		return s.Domain
	}
	return s.AppName
}

// AppUsage is an aggregate row for the top-applications report
type AppUsage struct {
	Name          string `json:"name"`
	TotalDuration int64  `json:"totalDuration"` // seconds
	SessionCount  int    `json:"sessionCount"`
}

// SiteUsage is an aggregate row for the top-websites report
type SiteUsage struct {
	Domain        string `json:"domain"`
	TotalDuration int64  `json:"totalDuration"` // seconds
	SessionCount  int    `json:"sessionCount"`
}

// SessionEventKind distinguishes session lifecycle notifications
type SessionEventKind int

const (
	SessionStarted SessionEventKind = iota
	SessionFinalized
	SessionDiscarded
)

// SessionEvent is published by the segmentation engine when a session opens,
// is persisted, or is discarded as focus noise.
type SessionEvent struct {
	Kind    SessionEventKind
	Session ActivitySession
}
