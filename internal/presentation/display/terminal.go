// Package display owns the terminal for the live view: alternate screen
// buffer, cursor handling and layout dispatch.
package display

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/presentation/layout"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

type TerminalDisplay struct {
	inAlternateScreen bool
	layoutStyle       int
	lastLayoutStyle   int
	showHelp          bool
}

func NewTerminalDisplay() *TerminalDisplay {
	return &TerminalDisplay{
		layoutStyle:     layout.StyleFull,
		lastLayoutStyle: -1,
	}
}

// EnterAlternateScreen switches to the alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Print("\033[?1049h")
	fmt.Print(util.ClearScreen)
	fmt.Print(util.MoveCursorHome)
	fmt.Print(util.HideCursor)
	td.inAlternateScreen = true
}

// ExitAlternateScreen returns to the normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Print(util.ClearScreen)
	fmt.Print(util.MoveCursorHome)
	fmt.Print(util.ShowCursor)
	fmt.Print("\033[?1049l")
	td.inAlternateScreen = false
}

// CycleLayout advances to the next layout style and returns its name
func (td *TerminalDisplay) CycleLayout() string {
	td.layoutStyle = layout.NextStyle(td.layoutStyle)
	return layout.GetLayoutStrategy(td.layoutStyle).Name()
}

// ToggleHelp flips the help overlay
func (td *TerminalDisplay) ToggleHelp() {
	td.showHelp = !td.showHelp
}

// HelpVisible reports whether the help overlay is showing
func (td *TerminalDisplay) HelpVisible() bool {
	return td.showHelp
}

// Render draws the current frame. A layout change forces a full clear;
// otherwise the cursor just returns home so unchanged cells stay put.
func (td *TerminalDisplay) Render(stats *model.LiveStats) {
	if td.layoutStyle != td.lastLayoutStyle {
		fmt.Print(util.ClearScreen)
		td.lastLayoutStyle = td.layoutStyle
	}
	fmt.Print(util.MoveCursorHome)

	if td.showHelp {
		td.renderHelp()
		fmt.Print("\033[J")
		return
	}

	width := terminalWidth()
	layout.GetLayoutStrategy(td.layoutStyle).Render(stats, width)

	// Clear anything left over from a taller previous frame
	fmt.Print("\033[J")
}

func (td *TerminalDisplay) renderHelp() {
	fmt.Println("Activity Tracker - Help")
	fmt.Println(strings.Repeat("═", 60))
	fmt.Println()
	fmt.Println("Keyboard Shortcuts:")
	fmt.Println()
	fmt.Println("  q/Esc/Ctrl+C - Quit")
	fmt.Println("  t            - Change layout (Full → Compact)")
	fmt.Println("  p            - Pause/resume tracking")
	fmt.Println("  r            - Force refresh")
	fmt.Println("  h            - Toggle this help")
	fmt.Println()
	fmt.Println(strings.Repeat("═", 60))
	fmt.Println("Press 'h' to return...")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
