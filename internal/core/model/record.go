package model

// Tag is a user-assigned label on an activity record
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Activity is a persisted activity record as handed to the validation
// engine: a finished session or an imported record from another source.
// Timestamps are RFC3339 strings exactly as stored, so that the validator
// can report unparseable values instead of losing them on decode.
type Activity struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	SourceType      string  `json:"sourceType"` // "tracking", "pomodoro", "manual", ...
	Type            string  `json:"type"`       // "application", "website", "focus", ...
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationSeconds *int64  `json:"durationSeconds,omitempty"`
	CategoryID      *int    `json:"categoryId,omitempty"`
	Tags            []Tag   `json:"tags,omitempty"`
	SessionType     string  `json:"sessionType,omitempty"` // required for pomodoro records
	Editable        bool    `json:"editable"`
	EditableFields  []string `json:"editableFields,omitempty"`
}

// Source types with validation side conditions
const (
	SourceTracking = "tracking"
	SourcePomodoro = "pomodoro"
	SourceManual   = "manual"
)
