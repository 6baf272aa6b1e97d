package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "SALARY"},
		[][]string{{"Cora", "$300"}, {"Victoria", "$1,200"}},
		AlignLeft, AlignRight,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "Cora        $300", lines[2])
	assert.Equal(t, "Victoria  $1,200", lines[3])
	assert.Contains(t, lines[1], "────────  ──────")
}

func TestRenderTable_ShortRowsAndNoHeaders(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"x"}}))
	assert.Contains(t, out, "x")
	assert.Empty(t, RenderTable(nil, nil))
}
