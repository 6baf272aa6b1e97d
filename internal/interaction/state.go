// Package interaction holds the UI-facing state of the chart: which nodes
// are expanded, which layers are shown, search results, the highlighted
// employee, zoom and scroll offsets.
//
// State never mutates a hierarchy.Tree. Expansion is keyed by employee id
// so it survives a rebuild of the tree.
package interaction

import (
	"sort"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/hierarchy"
)

// Zoom bounds and step sizes.
const (
	MinZoom       = 0.25
	MaxZoom       = 2.0
	DefaultZoom   = 1.0
	ZoomStep      = 0.25
	WheelZoomStep = 0.1
)

// Options tunes limits that the chart applies.
type Options struct {
	// ExpandAllLayerLimit disables ExpandAll once more layers are visible.
	ExpandAllLayerLimit int
	// MaxSearchResults caps Search and SearchFuzzy.
	MaxSearchResults int
	// PanDistance is how far one pan key moves the scroll offset.
	PanDistance float64
	// VisibleLayers is the initial layer filter.
	VisibleLayers []int
}

// DefaultOptions returns the stock chart limits.
func DefaultOptions() Options {
	return Options{
		ExpandAllLayerLimit: 5,
		MaxSearchResults:    10,
		PanDistance:         100,
		VisibleLayers:       domain.DefaultVisibleLayers(),
	}
}

// State is the mutable interaction state for one chart.
type State struct {
	opts Options

	expanded      map[string]bool
	visibleLayers map[int]bool

	searchResults []string
	highlightedID string

	zoom       float64
	scrollTop  float64
	scrollLeft float64

	containerWidth  float64
	containerHeight float64
}

// New returns a State with opts applied. Zero-valued limits fall back to
// DefaultOptions.
func New(opts Options) *State {
	def := DefaultOptions()
	if opts.ExpandAllLayerLimit <= 0 {
		opts.ExpandAllLayerLimit = def.ExpandAllLayerLimit
	}
	if opts.MaxSearchResults <= 0 {
		opts.MaxSearchResults = def.MaxSearchResults
	}
	if opts.PanDistance <= 0 {
		opts.PanDistance = def.PanDistance
	}
	if opts.VisibleLayers == nil {
		opts.VisibleLayers = def.VisibleLayers
	}

	s := &State{
		opts:          opts,
		expanded:      make(map[string]bool),
		visibleLayers: make(map[int]bool, len(opts.VisibleLayers)),
		zoom:          DefaultZoom,
	}
	for _, l := range opts.VisibleLayers {
		s.visibleLayers[l] = true
	}
	return s
}

// Options returns the limits this state was built with.
func (s *State) Options() Options { return s.opts }

// ── Layers ───────────────────────────────────────────────────────────────────

// ToggleLayerVisibility flips whether level is shown.
func (s *State) ToggleLayerVisibility(level int) {
	if s.visibleLayers[level] {
		delete(s.visibleLayers, level)
		return
	}
	s.visibleLayers[level] = true
}

// IsLayerVisible reports whether level is shown.
func (s *State) IsLayerVisible(level int) bool { return s.visibleLayers[level] }

// VisibleLayers returns the shown levels in ascending order.
func (s *State) VisibleLayers() []int {
	out := make([]int, 0, len(s.visibleLayers))
	for l := range s.visibleLayers {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// SetVisibleLayers replaces the layer filter.
func (s *State) SetVisibleLayers(levels []int) {
	s.visibleLayers = make(map[int]bool, len(levels))
	for _, l := range levels {
		s.visibleLayers[l] = true
	}
}

// IsExpandAllDisabled reports whether too many layers are visible for
// ExpandAll to run.
func (s *State) IsExpandAllDisabled() bool {
	return len(s.visibleLayers) > s.opts.ExpandAllLayerLimit
}

// ── Expansion ────────────────────────────────────────────────────────────────

// IsExpanded reports whether the node with id is expanded. The virtual
// root is always expanded.
func (s *State) IsExpanded(id string) bool {
	return id == hierarchy.VirtualRootID || s.expanded[id]
}

// Toggle flips the expansion of the node with id and returns the new value.
func (s *State) Toggle(id string) bool {
	if s.expanded[id] {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = true
	return true
}

// Expand marks id expanded.
func (s *State) Expand(id string) { s.expanded[id] = true }

// Collapse marks id collapsed.
func (s *State) Collapse(id string) { delete(s.expanded, id) }

// ExpandedIDs returns the expanded ids in sorted order.
func (s *State) ExpandedIDs() []string {
	out := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// RestoreExpanded replaces the expanded set, e.g. from a saved view.
func (s *State) RestoreExpanded(ids []string) {
	s.expanded = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.expanded[id] = true
	}
}

// ExpandAll expands every node with children. It does nothing while
// IsExpandAllDisabled is true and reports whether it ran.
func (s *State) ExpandAll(t *hierarchy.Tree) bool {
	if s.IsExpandAllDisabled() {
		return false
	}
	for _, n := range t.Nodes() {
		if n.HasChildren {
			s.expanded[n.ID] = true
		}
	}
	return true
}

// CollapseAll collapses every node below level 1. Level 1 nodes keep
// their current state.
func (s *State) CollapseAll(t *hierarchy.Tree) {
	for _, n := range t.Nodes() {
		if n.Level > 1 {
			delete(s.expanded, n.ID)
		}
	}
}

// ExpandPath expands every ancestor of n that has children so n becomes
// reachable in the visible tree.
func (s *State) ExpandPath(t *hierarchy.Tree, n *hierarchy.Node) {
	for _, a := range t.PathToRoot(n) {
		if a.HasChildren {
			s.expanded[a.ID] = true
		}
	}
}

// ── Visibility ───────────────────────────────────────────────────────────────

// VisibleRow is one node of the flattened visible tree.
type VisibleRow struct {
	Node  *hierarchy.Node
	Depth int
}

// VisibleNodes flattens the tree in pre-order, keeping nodes whose level
// is shown and whose ancestors are all expanded. A node on a hidden layer
// is skipped but its expanded subtree is still walked, one depth up.
func (s *State) VisibleNodes(t *hierarchy.Tree) []VisibleRow {
	var rows []VisibleRow
	var visit func(n *hierarchy.Node, depth int)
	visit = func(n *hierarchy.Node, depth int) {
		childDepth := depth
		if s.visibleLayers[n.Level] {
			rows = append(rows, VisibleRow{Node: n, Depth: depth})
			childDepth = depth + 1
		}
		if !s.IsExpanded(n.ID) {
			return
		}
		for _, c := range t.Children(n) {
			visit(c, childDepth)
		}
	}
	if root, ok := t.Root(); ok {
		visit(root, 0)
	}
	return rows
}

// IsVisible reports whether n appears in VisibleNodes.
func (s *State) IsVisible(t *hierarchy.Tree, n *hierarchy.Node) bool {
	if !s.visibleLayers[n.Level] {
		return false
	}
	if root, ok := t.Root(); !ok || (n.Parent == hierarchy.NoParent && n.Index != root.Index) {
		return false
	}
	for _, a := range t.PathToRoot(n) {
		if !s.IsExpanded(a.ID) {
			return false
		}
	}
	return true
}

// RealEmployeeCount returns the number of employees excluding the
// virtual root.
func RealEmployeeCount(t *hierarchy.Tree) int { return t.RealCount() }
