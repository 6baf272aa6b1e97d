package interaction

import (
	"sort"
	"strings"

	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// searchable reports whether n can be a search hit: it must be linked into
// the tree and be the record ByID resolves its id to, since results and
// the highlight are kept by id.
func searchable(t *hierarchy.Tree, n *hierarchy.Node) bool {
	if t.IsOrphan(n) {
		return false
	}
	cur, ok := t.ByID(n.ID)
	return ok && cur == n
}

// Search does a case-insensitive substring match of query against
// employee names, keeping arena order and at most MaxSearchResults hits.
// Detached orphans and shadowed duplicates are skipped. A blank query
// clears the results.
func (s *State) Search(t *hierarchy.Tree, query string) []*hierarchy.Node {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		s.searchResults = nil
		return nil
	}

	var hits []*hierarchy.Node
	for _, n := range t.Nodes() {
		if len(hits) == s.opts.MaxSearchResults {
			break
		}
		if n.Name != "" && searchable(t, n) && strings.Contains(strings.ToLower(n.Name), q) {
			hits = append(hits, n)
		}
	}
	s.setResults(hits)
	return hits
}

// SearchFuzzy ranks employees whose names fuzzily contain query, best
// match first, capped at MaxSearchResults.
func (s *State) SearchFuzzy(t *hierarchy.Tree, query string) []*hierarchy.Node {
	q := strings.TrimSpace(query)
	if q == "" {
		s.searchResults = nil
		return nil
	}

	var nodes []*hierarchy.Node
	for _, n := range t.Nodes() {
		if searchable(t, n) {
			nodes = append(nodes, n)
		}
	}
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	ranks := fuzzy.RankFindFold(q, names)
	sort.Stable(ranks)

	var hits []*hierarchy.Node
	for _, r := range ranks {
		if len(hits) == s.opts.MaxSearchResults {
			break
		}
		hits = append(hits, nodes[r.OriginalIndex])
	}
	s.setResults(hits)
	return hits
}

func (s *State) setResults(hits []*hierarchy.Node) {
	s.searchResults = make([]string, len(hits))
	for i, n := range hits {
		s.searchResults[i] = n.ID
	}
}

// SearchResults resolves the stored result ids against t. Ids that no
// longer exist after a rebuild are dropped.
func (s *State) SearchResults(t *hierarchy.Tree) []*hierarchy.Node {
	var out []*hierarchy.Node
	for _, id := range s.searchResults {
		if n, ok := t.ByID(id); ok {
			out = append(out, n)
		}
	}
	return out
}

// ClearSearch drops the results and the highlight.
func (s *State) ClearSearch() {
	s.searchResults = nil
	s.highlightedID = ""
}

// ── Selection ────────────────────────────────────────────────────────────────

// SelectEmployee is the first half of a two-phase select: it clears the
// current highlight, expands the path to the node and clears the search
// results. It returns the id the caller should pass to ApplyHighlight once
// its layout pass has settled, or "" when id is unknown.
func (s *State) SelectEmployee(t *hierarchy.Tree, id string) string {
	n, ok := t.ByID(id)
	if !ok {
		return ""
	}
	s.highlightedID = ""
	s.ExpandPath(t, n)
	s.searchResults = nil
	return n.ID
}

// SearchAndHighlight selects the first search result, if any.
func (s *State) SearchAndHighlight(t *hierarchy.Tree) string {
	results := s.SearchResults(t)
	if len(results) == 0 {
		return ""
	}
	return s.SelectEmployee(t, results[0].ID)
}

// ApplyHighlight completes a select by marking id highlighted.
func (s *State) ApplyHighlight(id string) { s.highlightedID = id }

// HighlightedID returns the highlighted employee id, or "".
func (s *State) HighlightedID() string { return s.highlightedID }
