package interaction

import (
	"sort"
	"strings"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

// SortField represents the field to sort sessions by
type SortField int

const (
	SortByTime SortField = iota
	SortByDuration
	SortByApp
)

// SortOrder represents the sort order
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// SessionSorter handles sorting of stored sessions
type SessionSorter struct {
	field SortField
	order SortOrder
}

// NewSessionSorter creates a sorter with the default order: most recent first
func NewSessionSorter() *SessionSorter {
	return &SessionSorter{
		field: SortByTime,
		order: SortDescending,
	}
}

// SetField changes the sort field
func (s *SessionSorter) SetField(field SortField) {
	s.field = field
}

// SetOrder changes the sort order
func (s *SessionSorter) SetOrder(order SortOrder) {
	s.order = order
}

// Sort sorts the sessions based on current settings
func (s *SessionSorter) Sort(sessions []model.ActivitySession) {
	sort.Slice(sessions, func(i, j int) bool {
		var less bool

		switch s.field {
		case SortByTime:
			less = sessions[i].StartTime < sessions[j].StartTime
		case SortByDuration:
			less = sessions[i].DurationSeconds < sessions[j].DurationSeconds
		case SortByApp:
			less = strings.ToLower(sessions[i].AppName) < strings.ToLower(sessions[j].AppName)
		}

		if s.order == SortDescending {
			return !less
		}
		return less
	})
}
