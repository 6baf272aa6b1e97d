package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title       string
	Depth       int
	Level       int // employee level, picks the title colour
	IsLast      bool
	Marker      string // expansion glyph drawn before the title
	Detail      string
	Highlighted bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. indent is the number of columns
// per depth step (minimum 1). Detail badges are right-aligned.
func RenderTree(items []TreeItem, indent int) string {
	if len(items) == 0 {
		return ""
	}
	if indent < 1 {
		indent = 1
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// open[d] is true while an ancestor at depth d still has siblings below.
	var open []bool

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		for len(open) <= item.Depth {
			open = append(open, false)
		}

		var prefix string
		if item.Depth > 0 {
			for d := 1; d < item.Depth; d++ {
				if open[d] {
					prefix += connector(treePipe, indent)
				} else {
					prefix += connector(treeBlank, indent)
				}
			}
			if item.IsLast {
				prefix += connector(treeCorner, indent)
			} else {
				prefix += connector(treeBranch, indent)
			}
		}
		open[item.Depth] = !item.IsLast
		prefix = StyleDim.Render(prefix)

		title := LevelStyle(item.Level).Render(item.Title)
		if item.Highlighted {
			title = StyleHighlight.Render(item.Title)
		}
		marker := ""
		if item.Marker != "" {
			marker = StyleDim.Render(item.Marker) + " "
		}

		content := prefix + marker + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}

// connector scales a three-column connector glyph to width columns.
func connector(glyph string, width int) string {
	r := []rune(glyph)
	switch {
	case width == 3:
		return glyph
	case width < 3:
		return string(r[:width])
	default:
		fill := " "
		if r[1] == '─' {
			fill = "─"
		}
		return string(r[0]) + strings.Repeat(fill, width-2) + " "
	}
}
