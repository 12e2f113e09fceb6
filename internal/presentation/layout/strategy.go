// Package layout renders the live tracking view. Two layouts are available:
// the full dashboard and a compact one-glance variant; the 't' key cycles
// between them.
package layout

import (
	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

// Layout style identifiers
const (
	StyleFull = iota
	StyleCompact
	styleCount
)

// LayoutStrategy renders a live stats snapshot to stdout
type LayoutStrategy interface {
	Render(stats *model.LiveStats, width int)
	Name() string
}

// GetLayoutStrategy returns the strategy for a layout style, falling back to
// the full layout for unknown styles.
func GetLayoutStrategy(style int) LayoutStrategy {
	switch style {
	case StyleCompact:
		return &CompactLayout{}
	default:
		return &FullLayout{}
	}
}

// NextStyle cycles to the next layout style
func NextStyle(style int) int {
	return (style + 1) % styleCount
}
