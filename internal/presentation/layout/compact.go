package layout

import (
	"fmt"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

// CompactLayout is a minimal three-line view for quick checks
type CompactLayout struct{}

func (l *CompactLayout) Name() string {
	return "Compact"
}

func (l *CompactLayout) Render(stats *model.LiveStats, width int) {
	width = clampWidth(width)

	topBorder(width)

	current := "idle"
	if stats.Current != nil {
		elapsed := util.GetTimeProvider().Now().Unix() - stats.Current.StartTime
		current = fmt.Sprintf("%s (%s)", stats.Current.Label(), util.FormatSeconds(elapsed))
	}
	boxLine(fmt.Sprintf("%s  %s", trackingIndicator(stats), current), width)

	if len(stats.TopApps) > 0 {
		top := stats.TopApps[0]
		boxLine(fmt.Sprintf("top app:  %s %s", top.Name, util.FormatSeconds(top.TotalDuration)), width)
	}
	if len(stats.TopSites) > 0 {
		top := stats.TopSites[0]
		boxLine(fmt.Sprintf("top site: %s %s", top.Domain, util.FormatSeconds(top.TotalDuration)), width)
	}

	bottomBorder(width)
}
