package layout

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-activity-tracker/internal/util"
)

const (
	minWidth     = 60
	defaultWidth = 80
)

// clampWidth keeps box layouts readable on narrow terminals
func clampWidth(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	if width < minWidth {
		return minWidth
	}
	return width
}

func topBorder(width int) {
	fmt.Println("╭" + strings.Repeat("─", width-2) + "╮")
}

func bottomBorder(width int) {
	fmt.Println("╰" + strings.Repeat("─", width-2) + "╯")
}

func separator(width int) {
	fmt.Println("├" + strings.Repeat("─", width-2) + "┤")
}

// boxLine prints a single body line, padded to the box width. Content wider
// than the box is truncated.
func boxLine(content string, width int) {
	inner := width - 4
	display := util.GetDisplayWidth(content)
	if display > inner {
		content = util.TruncateString(content, inner)
		display = util.GetDisplayWidth(content)
	}
	fmt.Println("│ " + content + strings.Repeat(" ", inner-display) + " │")
}

// usageBar renders a proportional bar for a usage row
func usageBar(value, max int64, barWidth int) string {
	if max <= 0 || barWidth <= 0 {
		return ""
	}
	filled := int(float64(barWidth) * float64(value) / float64(max))
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
