// Package validate implements the data-quality checks applied to persisted
// and candidate activity records: time-range sanity, pairwise overlap, and
// duplicate likelihood via a weighted similarity score. All functions are
// pure; results are returned as structured data and never thrown.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

// ValidationResult reports the outcome of a validation call. Errors make
// the record invalid; warnings are advisory only.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func newResult() ValidationResult {
	return ValidationResult{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

func (r *ValidationResult) addError(format string, args ...interface{}) {
	r.IsValid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// merge folds another result into this one
func (r *ValidationResult) merge(other ValidationResult) {
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// parseTimestamp accepts the RFC3339 timestamps used throughout storage
func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(value))
}

// ValidateTimeRange checks that start and end parse and form a positive
// interval. Future timestamps, ranges over 24 hours, and sub-second ranges
// are flagged as warnings only.
func ValidateTimeRange(start, end string) ValidationResult {
	result := newResult()

	startTime, startErr := parseTimestamp(start)
	if startErr != nil {
		result.addError("invalid start time: %q", start)
	}
	endTime, endErr := parseTimestamp(end)
	if endErr != nil {
		result.addError("invalid end time: %q", end)
	}
	if startErr != nil || endErr != nil {
		return result
	}

	if !startTime.Before(endTime) {
		result.addError("start must be before end")
		return result
	}

	now := time.Now()
	if startTime.After(now) {
		result.addWarning("start time is in the future")
	}
	if endTime.After(now) {
		result.addWarning("end time is in the future")
	}

	duration := endTime.Sub(startTime)
	if duration > 24*time.Hour {
		result.addWarning("duration exceeds 24 hours")
	}
	if duration < time.Second {
		result.addWarning("duration is under 1 second")
	}

	return result
}

// ValidateActivity checks a single activity record: required identity
// fields, time-range sanity, and field-value consistency.
func ValidateActivity(activity model.Activity) ValidationResult {
	result := newResult()

	if strings.TrimSpace(activity.ID) == "" {
		result.addError("missing required field: id")
	}
	if strings.TrimSpace(activity.Title) == "" {
		result.addError("missing required field: title")
	}
	if strings.TrimSpace(activity.SourceType) == "" {
		result.addError("missing required field: sourceType")
	}
	if strings.TrimSpace(activity.Type) == "" {
		result.addError("missing required field: type")
	}

	result.merge(ValidateTimeRange(activity.StartTime, activity.EndTime))

	if activity.DurationSeconds != nil {
		duration := *activity.DurationSeconds
		if duration < 0 {
			result.addError("durationSeconds must not be negative, got %d", duration)
		} else if startTime, err := parseTimestamp(activity.StartTime); err == nil {
			if endTime, err := parseTimestamp(activity.EndTime); err == nil {
				actual := int64(endTime.Sub(startTime).Seconds())
				diff := duration - actual
				if diff < -1 || diff > 1 {
					result.addWarning("durationSeconds %d disagrees with time range (%ds)", duration, actual)
				}
			}
		}
	}

	if activity.CategoryID != nil && *activity.CategoryID <= 0 {
		result.addError("categoryId must be positive, got %d", *activity.CategoryID)
	}

	for _, tag := range activity.Tags {
		if tag.ID <= 0 {
			result.addError("tag id must be positive, got %d", tag.ID)
		}
		if strings.TrimSpace(tag.Name) == "" {
			result.addError("tag %d has an empty name", tag.ID)
		}
	}

	if activity.SourceType == model.SourcePomodoro && strings.TrimSpace(activity.SessionType) == "" {
		result.addError("pomodoro activity requires a session type")
	}

	return result
}

// ValidateEditPermissions checks that every updated field is allowed by the
// activity's editable-fields allowlist.
func ValidateEditPermissions(activity model.Activity, updatedFields []string) ValidationResult {
	result := newResult()

	if !activity.Editable {
		result.addError("activity %s is not editable", activity.ID)
		return result
	}

	allowed := make(map[string]bool, len(activity.EditableFields))
	for _, field := range activity.EditableFields {
		allowed[field] = true
	}

	for _, field := range updatedFields {
		if !allowed[field] {
			result.addError("field is not editable: %s", field)
		}
	}

	return result
}

// ValidateBatch validates every activity in a batch, keyed by id. Records
// without an id are keyed by their position so no result is lost.
func ValidateBatch(activities []model.Activity) map[string]ValidationResult {
	results := make(map[string]ValidationResult, len(activities))
	for i, activity := range activities {
		key := activity.ID
		if strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("activity[%d]", i)
		}
		results[key] = ValidateActivity(activity)
	}
	return results
}
