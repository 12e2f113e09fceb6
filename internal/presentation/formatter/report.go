package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/penwyp/go-activity-tracker/internal/core/validate"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true)
	passStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	detailStyle      = lipgloss.NewStyle().Faint(true)
)

// ValidationReport bundles everything the validate command found for a batch
type ValidationReport struct {
	Results    map[string]validate.ValidationResult `json:"results"`
	Overlaps   map[string]validate.OverlapResult    `json:"overlaps,omitempty"`
	Duplicates map[string]validate.DuplicateResult  `json:"duplicates,omitempty"`
}

// HasFailures reports whether any activity failed validation
func (r *ValidationReport) HasFailures() bool {
	for _, result := range r.Results {
		if !result.IsValid {
			return true
		}
	}
	return false
}

// RenderValidationReport renders a styled plain-text report
func RenderValidationReport(report *ValidationReport) string {
	var b strings.Builder

	keys := make([]string, 0, len(report.Results))
	for key := range report.Results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	valid, invalid := 0, 0
	for _, result := range report.Results {
		if result.IsValid {
			valid++
		} else {
			invalid++
		}
	}

	b.WriteString(reportTitleStyle.Render(fmt.Sprintf("Validation: %d activities, %d valid, %d invalid", len(keys), valid, invalid)))
	b.WriteString("\n\n")

	for _, key := range keys {
		result := report.Results[key]

		if result.IsValid {
			b.WriteString(passStyle.Render("PASS") + "  " + key + "\n")
		} else {
			b.WriteString(failStyle.Render("FAIL") + "  " + key + "\n")
		}
		for _, msg := range result.Errors {
			b.WriteString("      " + failStyle.Render("error: "+msg) + "\n")
		}
		for _, msg := range result.Warnings {
			b.WriteString("      " + warnStyle.Render("warning: "+msg) + "\n")
		}

		if overlap, ok := report.Overlaps[key]; ok && overlap.HasOverlap {
			b.WriteString("      " + warnStyle.Render(fmt.Sprintf("overlaps %d activities (%ds total)",
				len(overlap.Overlaps), overlap.TotalOverlapSeconds)) + "\n")
			for _, entry := range overlap.Overlaps {
				b.WriteString("      " + detailStyle.Render(fmt.Sprintf("  %s: %ds", entry.Activity.Title, entry.OverlapSeconds)) + "\n")
			}
		}

		if dup, ok := report.Duplicates[key]; ok && dup.HasDuplicates {
			b.WriteString("      " + warnStyle.Render(fmt.Sprintf("%d likely duplicates (mean score %.1f)",
				len(dup.Duplicates), dup.MeanScore)) + "\n")
			for _, match := range dup.Duplicates {
				b.WriteString("      " + detailStyle.Render(fmt.Sprintf("  %s: score %d", match.Activity.Title, match.Score)) + "\n")
			}
		}
	}

	return b.String()
}
