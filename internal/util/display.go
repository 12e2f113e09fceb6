package util

import (
	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorBold   = "\033[1m"

	ClearScreen    = "\033[2J" // Clear entire screen
	ClearLine      = "\033[2K" // Clear entire line
	MoveCursorHome = "\033[H"  // Move cursor to home position
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads a string with spaces to the given display width
func PadRight(text string, width int) string {
	gap := width - GetDisplayWidth(text)
	for gap > 0 {
		text += " "
		gap--
	}
	return text
}
