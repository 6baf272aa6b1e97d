package interaction

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*hierarchy.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestSearch_CaseInsensitiveSubstringInRosterOrder(t *testing.T) {
	tree := hierarchy.Build([]domain.Employee{
		{ID: "1", Name: "Ana", Level: 1},
		{ID: "2", ManagerID: "1", Name: "Anna", Level: 2},
		{ID: "3", ManagerID: "1", Name: "Bob", Level: 2},
	})
	s := New(DefaultOptions())

	got := s.Search(tree, "anA")
	assert.Equal(t, []string{"Ana", "Anna"}, names(got))
	assert.Equal(t, []string{"Ana", "Anna"}, names(s.SearchResults(tree)))
}

func TestSearch_BlankQueryClears(t *testing.T) {
	tree := sampleTree()
	s := New(DefaultOptions())
	require.NotEmpty(t, s.Search(tree, "a"))

	assert.Nil(t, s.Search(tree, "   "))
	assert.Empty(t, s.SearchResults(tree))
}

func TestSearch_CapsResults(t *testing.T) {
	var roster []domain.Employee
	for i := 0; i < 25; i++ {
		roster = append(roster, domain.Employee{ID: fmt.Sprint(i), Name: fmt.Sprintf("Sam %02d", i), Level: 3})
	}
	tree := hierarchy.Build(roster)
	s := New(DefaultOptions())

	got := s.Search(tree, "sam")
	require.Len(t, got, 10)
	assert.Equal(t, "Sam 00", got[0].Name)
	assert.Equal(t, "Sam 09", got[9].Name)
}

func TestSearch_MatchesVirtualRootName(t *testing.T) {
	tree := hierarchy.Build([]domain.Employee{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	s := New(DefaultOptions())
	got := s.Search(tree, "organ")
	require.Len(t, got, 1)
	assert.True(t, got[0].IsVirtualRoot)
}

func TestSearchFuzzy_RanksCloserMatchesFirst(t *testing.T) {
	tree := hierarchy.Build([]domain.Employee{
		{ID: "1", Name: "Jonathan Smith", Level: 1},
		{ID: "2", ManagerID: "1", Name: "Jon Snow", Level: 2},
		{ID: "3", ManagerID: "1", Name: "Bob", Level: 2},
	})
	s := New(DefaultOptions())

	got := s.SearchFuzzy(tree, "jon")
	assert.Equal(t, []string{"Jon Snow", "Jonathan Smith"}, names(got))
	assert.Nil(t, s.SearchFuzzy(tree, ""))
}

func TestSelectEmployee_TwoPhase(t *testing.T) {
	tree := sampleTree()
	s := New(DefaultOptions())
	s.ApplyHighlight("pa")
	s.Search(tree, "dana")

	pending := s.SelectEmployee(tree, "dev")
	assert.Equal(t, "dev", pending)
	assert.Equal(t, "", s.HighlightedID(), "highlight waits for the second phase")
	assert.Empty(t, s.SearchResults(tree))

	dev, _ := tree.ByID("dev")
	assert.True(t, s.IsVisible(tree, dev))

	s.ApplyHighlight(pending)
	assert.Equal(t, "dev", s.HighlightedID())
}

func TestSelectEmployee_UnknownID(t *testing.T) {
	s := New(DefaultOptions())
	assert.Equal(t, "", s.SelectEmployee(sampleTree(), "nope"))
}

func TestSearchAndHighlight(t *testing.T) {
	tree := sampleTree()
	s := New(DefaultOptions())
	assert.Equal(t, "", s.SearchAndHighlight(tree), "no results yet")

	s.Search(tree, "mon")
	assert.Equal(t, "mgr", s.SearchAndHighlight(tree))
}

func TestClearSearch(t *testing.T) {
	tree := sampleTree()
	s := New(DefaultOptions())
	s.Search(tree, "a")
	s.ApplyHighlight("ceo")

	s.ClearSearch()
	assert.Empty(t, s.SearchResults(tree))
	assert.Equal(t, "", s.HighlightedID())
}

func TestSearchResults_DropIDsMissingAfterRebuild(t *testing.T) {
	s := New(DefaultOptions())
	s.Search(sampleTree(), "pat")

	rebuilt := hierarchy.Build([]domain.Employee{{ID: "ceo", Name: "Cora", Level: 1}})
	assert.Empty(t, s.SearchResults(rebuilt))
}

func TestSearch_SkipsOrphansAndShadowedRecords(t *testing.T) {
	tree := hierarchy.Build([]domain.Employee{
		{ID: "1", Name: "Cora", Level: 1},
		{ID: "2", ManagerID: "1", Name: "Old Dana", Level: 2},
		{ID: "x", ManagerID: "y", Name: "Loop Dan", Level: 3},
		{ID: "y", ManagerID: "x", Name: "Loop Dee", Level: 3},
		{ID: "2", ManagerID: "1", Name: "Dana", Level: 2},
	})
	require.Len(t, tree.Orphans(), 2)
	s := New(DefaultOptions())

	assert.Equal(t, []string{"Dana"}, names(s.Search(tree, "da")))
	assert.Equal(t, []string{"Dana"}, names(s.SearchFuzzy(tree, "dan")))

	id := s.SearchAndHighlight(tree)
	s.ApplyHighlight(id)
	n, ok := tree.ByID(s.HighlightedID())
	require.True(t, ok)
	assert.True(t, s.IsVisible(tree, n), "a selected hit is always reachable")
}
