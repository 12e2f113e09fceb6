package layout

import (
	"fmt"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

// FullLayout is the default dashboard: current session, top applications
// and top websites with usage bars.
type FullLayout struct{}

func (l *FullLayout) Name() string {
	return "Full Dashboard"
}

func (l *FullLayout) Render(stats *model.LiveStats, width int) {
	width = clampWidth(width)
	now := util.GetTimeProvider().Now()

	topBorder(width)
	boxLine(fmt.Sprintf("Activity Tracker  %s  %s", trackingIndicator(stats), now.Format("15:04:05")), width)
	separator(width)

	l.currentSection(stats, width)
	separator(width)
	l.usageSection("TOP APPLICATIONS", appRows(stats.TopApps), width)
	separator(width)
	l.usageSection("TOP WEBSITES", siteRows(stats.TopSites), width)

	if stats.StatusMessage != "" {
		separator(width)
		boxLine("Status: "+stats.StatusMessage, width)
	}

	separator(width)
	boxLine("q quit  t layout  p pause  r refresh  h help", width)
	bottomBorder(width)
}

func (l *FullLayout) currentSection(stats *model.LiveStats, width int) {
	boxLine("CURRENT", width)
	if stats.Current == nil {
		boxLine("  (no active session)", width)
		return
	}

	cur := stats.Current
	elapsed := util.GetTimeProvider().Now().Unix() - cur.StartTime
	boxLine(fmt.Sprintf("  %s", cur.Label()), width)
	boxLine(fmt.Sprintf("  %s  started %s  elapsed %s",
		cur.Category,
		util.GetTimeProvider().FormatUnix(cur.StartTime, "15:04:05"),
		util.FormatSeconds(elapsed)), width)
	if cur.WindowTitle != "" {
		boxLine("  "+cur.WindowTitle, width)
	}
}

type usageRow struct {
	label    string
	duration int64
	sessions int
}

func appRows(apps []model.AppUsage) []usageRow {
	rows := make([]usageRow, len(apps))
	for i, a := range apps {
		rows[i] = usageRow{label: a.Name, duration: a.TotalDuration, sessions: a.SessionCount}
	}
	return rows
}

func siteRows(sites []model.SiteUsage) []usageRow {
	rows := make([]usageRow, len(sites))
	for i, s := range sites {
		rows[i] = usageRow{label: s.Domain, duration: s.TotalDuration, sessions: s.SessionCount}
	}
	return rows
}

func (l *FullLayout) usageSection(title string, rows []usageRow, width int) {
	boxLine(title, width)
	if len(rows) == 0 {
		boxLine("  (no data yet)", width)
		return
	}

	labelWidth := 0
	var maxDuration int64
	for _, row := range rows {
		if w := util.GetDisplayWidth(row.label); w > labelWidth {
			labelWidth = w
		}
		if row.duration > maxDuration {
			maxDuration = row.duration
		}
	}
	if labelWidth > 28 {
		labelWidth = 28
	}

	barWidth := width - labelWidth - 28
	if barWidth < 10 {
		barWidth = 10
	}

	for _, row := range rows {
		label := util.TruncateString(row.label, labelWidth)
		boxLine(fmt.Sprintf("  %s %s %8s (%d)",
			util.PadRight(label, labelWidth),
			usageBar(row.duration, maxDuration, barWidth),
			util.FormatSeconds(row.duration),
			row.sessions), width)
	}
}

func trackingIndicator(stats *model.LiveStats) string {
	switch {
	case stats.Paused:
		return "⏸ paused"
	case stats.Tracking:
		return "● tracking"
	default:
		return "○ stopped"
	}
}
