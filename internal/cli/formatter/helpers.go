package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Money formats an amount with thousands separators, showing cents only
// when present: 1234567.5 -> "$1,234,567.50", 1200 -> "$1,200".
func Money(d decimal.Decimal) string {
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, _ := strconv.ParseInt(whole, 10, 64)
	out := "$" + humanize.Comma(n)
	if frac != "00" {
		out += "." + frac
	}
	if d.IsNegative() && (n != 0 || frac != "00") {
		out = "-" + out
	}
	return out
}

// Count formats an integer with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// HumanTimestamp returns a relative time such as "3 minutes ago".
func HumanTimestamp(t time.Time) string {
	return humanize.Time(t)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Ellipsize shortens s to at most width visible cells.
func Ellipsize(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 {
		return "…"
	}
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
