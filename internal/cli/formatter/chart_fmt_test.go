package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/alexanderramin/orgscope/internal/interaction"
	"github.com/alexanderramin/orgscope/internal/service"
	"github.com/alexanderramin/orgscope/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	tree := hierarchy.Build(testutil.Roster())
	hierarchy.Aggregate(tree)
	require.False(t, tree.Empty())
	return tree
}

func TestFormatChart_CollapsedShowsRootOnly(t *testing.T) {
	tree := rosterTree(t)
	st := interaction.New(interaction.DefaultOptions())

	out := stripANSI(FormatChart(ChartView{
		Rows:        st.VisibleNodes(tree),
		IsExpanded:  st.IsExpanded,
		Cursor:      -1,
		Indent:      3,
		ShowMetrics: true,
	}))

	assert.Contains(t, out, MarkerCollapsed+" Cora")
	assert.Contains(t, out, "[ 5 reports · $600 · 0.42 ]")
	assert.NotContains(t, out, "Victor")
}

func TestFormatChart_ExpandedTree(t *testing.T) {
	tree := rosterTree(t)
	st := interaction.New(interaction.Options{VisibleLayers: []int{1, 2, 6, 7}})
	require.True(t, st.ExpandAll(tree))

	out := stripANSI(FormatChart(ChartView{
		Rows:          st.VisibleNodes(tree),
		IsExpanded:    st.IsExpanded,
		HighlightedID: "eng-2",
		Cursor:        1,
		Indent:        3,
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], MarkerExpanded+" Cora")
	assert.Contains(t, lines[1], "├─ "+MarkerExpanded+" › Victor")
	assert.Contains(t, lines[2], "│  ├─ "+MarkerLeaf+" Erin")
	assert.Contains(t, lines[3], "│  └─ "+MarkerLeaf+" Eli")
	assert.Contains(t, lines[4], "└─ "+MarkerExpanded+" Olga")
	assert.Contains(t, lines[5], "   └─ "+MarkerLeaf+" Omar")
	assert.NotContains(t, out, "[", "metrics hidden")
}

func TestFormatChart_Empty(t *testing.T) {
	out := stripANSI(FormatChart(ChartView{}))
	assert.Contains(t, out, "No employees")
}

func TestMetricsBadge_Singular(t *testing.T) {
	tree := rosterTree(t)
	vp, ok := tree.ByID("vp-ops")
	require.True(t, ok)
	assert.Equal(t, "1 report · $50 · 1.00", MetricsBadge(vp.Metrics))
}

func TestFormatEmployeeList(t *testing.T) {
	roster := testutil.Roster()
	roster[5].ManagerID = "gone"

	out := stripANSI(FormatEmployeeList(roster, nil))

	assert.Contains(t, out, "EMPLOYEES")
	assert.Contains(t, out, "Victor")
	assert.Contains(t, out, "gone?")
	assert.Contains(t, out, "6 employees")
	assert.Contains(t, stripANSI(FormatEmployeeList(nil, nil)), "No employees stored")
}

func TestFormatEmployeeList_ManagerFromFullRoster(t *testing.T) {
	roster := testutil.Roster()

	out := stripANSI(FormatEmployeeList(roster[4:5], roster))

	assert.Contains(t, out, "Olga")
	assert.Contains(t, out, "Cora")
	assert.NotContains(t, out, "ceo?")
}

func TestFormatEmployee_WithTree(t *testing.T) {
	tree := rosterTree(t)
	roster := testutil.Roster()
	n, ok := tree.ByID("vp-eng")
	require.True(t, ok)

	out := stripANSI(FormatEmployee(&roster[1], tree, n))

	assert.Contains(t, out, "Victor")
	assert.Contains(t, out, "L2")
	assert.Contains(t, out, "REPORTS TO")
	assert.Contains(t, out, "Cora")
	assert.Contains(t, out, "ORGANIZATION")
	assert.Contains(t, out, "$200")
	assert.Contains(t, out, "1.00")
}

func TestFormatEmployee_WithoutTree(t *testing.T) {
	roster := testutil.Roster()
	out := stripANSI(FormatEmployee(&roster[2], nil, nil))
	assert.Contains(t, out, "Erin")
	assert.NotContains(t, out, "REPORTS TO")
}

func TestFormatStats(t *testing.T) {
	tree := rosterTree(t)
	summary := hierarchy.Summarize(tree)
	snap := &service.Snapshot{Tree: tree, Version: 2, BuiltAt: time.Now(), Shadowed: 1}

	out := stripANSI(FormatStats(&summary, snap))

	assert.Contains(t, out, "ORGANIZATION")
	assert.Contains(t, out, "Headcount")
	assert.Contains(t, out, "$600")
	assert.Contains(t, out, "0.42")
	assert.Contains(t, out, "Duplicates")
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "L7")
	assert.NotContains(t, out, "Orphans")
}

func TestFormatStats_Empty(t *testing.T) {
	out := stripANSI(FormatStats(&hierarchy.Summary{}, nil))
	assert.Contains(t, out, "No employees to summarize")
}

func TestFormatSearchResults(t *testing.T) {
	tree := rosterTree(t)
	st := interaction.New(interaction.DefaultOptions())
	hits := st.Search(tree, "o")

	out := stripANSI(FormatSearchResults("o", tree, hits))

	assert.Contains(t, out, `SEARCH "O"`)
	assert.Contains(t, out, "Cora")
	assert.Contains(t, out, "Omar")
	assert.Contains(t, stripANSI(FormatSearchResults("zz", tree, nil)), "No matches")
}

func TestFormatImportResult(t *testing.T) {
	res := &service.ImportResult{
		Mode:     service.ImportMerge,
		Imported: 1200,
		Warnings: []error{errors.New("employees[3] (e4): name is empty")},
	}
	snap := &service.Snapshot{Version: 3, Headcount: 1198, Orphans: 2}

	out := stripANSI(FormatImportResult(res, snap))

	assert.Contains(t, out, "Imported 1,200 employees (merge)")
	assert.Contains(t, out, "chart v3")
	assert.Contains(t, out, "2 orphaned")
	assert.Contains(t, out, "1 warnings:")
	assert.Contains(t, out, "name is empty")
}
