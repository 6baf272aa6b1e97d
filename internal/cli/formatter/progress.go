package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders count/total as a bar of width cells followed by the
// count, e.g. "████░░░░ 12". Any non-zero share fills at least one cell.
func RenderShare(count, total, width int, style lipgloss.Style) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if total > 0 && count > 0 {
		filled = (count*width + total - 1) / total
	}
	if filled > width {
		filled = width
	}
	return style.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled)) + " " + Count(count)
}
