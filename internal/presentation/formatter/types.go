package formatter

import (
	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

// ReportData is what the report command renders
type ReportData struct {
	GeneratedAt  string                  `json:"generatedAt"`
	Applications []model.AppUsage        `json:"applications"`
	Websites     []model.SiteUsage       `json:"websites"`
	Sessions     []model.ActivitySession `json:"sessions,omitempty"`
}

// Formatter renders a usage report to stdout
type Formatter interface {
	Format(data *ReportData) error
}

// NewFormatter returns the formatter for an output format name
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTableFormatter()
	}
}
