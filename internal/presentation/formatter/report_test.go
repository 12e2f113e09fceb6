package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/core/validate"
)

func TestValidationReportHasFailures(t *testing.T) {
	report := &ValidationReport{
		Results: map[string]validate.ValidationResult{
			"a1": {IsValid: true},
			"a2": {IsValid: true},
		},
	}
	assert.False(t, report.HasFailures())

	report.Results["a3"] = validate.ValidationResult{IsValid: false, Errors: []string{"missing required field: title"}}
	assert.True(t, report.HasFailures())
}

func TestRenderValidationReport(t *testing.T) {
	report := &ValidationReport{
		Results: map[string]validate.ValidationResult{
			"a1": {IsValid: true},
			"a2": {
				IsValid:  false,
				Errors:   []string{"start must be before end"},
				Warnings: []string{"duration exceeds 24 hours"},
			},
		},
		Overlaps: map[string]validate.OverlapResult{
			"a1": {
				HasOverlap:          true,
				TotalOverlapSeconds: 120,
				Overlaps: []validate.OverlapEntry{
					{Activity: model.Activity{ID: "a2", Title: "other"}, OverlapSeconds: 120},
				},
			},
		},
	}

	out := RenderValidationReport(report)

	assert.Contains(t, out, "2 activities, 1 valid, 1 invalid")
	assert.Contains(t, out, "a1")
	assert.Contains(t, out, "a2")
	assert.Contains(t, out, "start must be before end")
	assert.Contains(t, out, "duration exceeds 24 hours")
	assert.Contains(t, out, "overlaps 1 activities (120s total)")

	// Keys render in sorted order
	assert.Less(t, strings.Index(out, "a1"), strings.Index(out, "a2"))
}

func TestTableFormatterColumnWidths(t *testing.T) {
	f := NewTableFormatter()

	headers := []string{"Application", "Time", "Sessions"}
	rows := [][]string{
		{"Code", "2h 15m", "12"},
		{"A very long application name", "45s", "1"},
	}

	widths := f.calculateColumnWidths(headers, rows)

	assert.Equal(t, len("A very long application name"), widths[0])
	assert.Equal(t, len("2h 15m"), widths[1])
	assert.Equal(t, len("Sessions"), widths[2])
}

func TestNewFormatterSelection(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter("json"))
	assert.IsType(t, &TableFormatter{}, NewFormatter("table"))
	assert.IsType(t, &TableFormatter{}, NewFormatter("anything-else"))
}
