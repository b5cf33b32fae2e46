package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// truncateText cuts text to width terminal cells, ending in an ellipsis
// when there is room for one.
func truncateText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if width <= ansi.StringWidth(ellipsis) {
		return ansi.Truncate(text, width, "")
	}
	return ansi.Truncate(text, width, ellipsis)
}

// wrapText reflows text into lines of at most width cells. Existing line
// breaks are treated as spaces.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(strings.Join(strings.Fields(text), " "), width, "")
}
