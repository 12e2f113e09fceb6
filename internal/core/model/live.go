package model

// LiveStats is the snapshot rendered by the live terminal view
type LiveStats struct {
	Tracking             bool
	Paused               bool
	PollIntervalSeconds  int
	IdleThresholdSeconds int
	Current              *ActivitySession
	TopApps              []AppUsage
	TopSites             []SiteUsage
	StatusMessage        string
}
