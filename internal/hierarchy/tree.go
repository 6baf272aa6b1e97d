// Package hierarchy turns a flat employee roster into a reporting tree and
// computes the bottom-up cost and headcount roll-ups for every node.
//
// Nodes live in an arena owned by the Tree. Parent and child links are
// arena indices, so the tree holds no pointer cycles and a Tree can be
// handed to readers as an immutable snapshot once Aggregate has run.
package hierarchy

import (
	"github.com/alexanderramin/orgscope/internal/domain"
)

// VirtualRootID is the id of the synthesized root that unifies several
// top-level employees into one tree.
const VirtualRootID = "virtual-root"

// NoParent marks a node without a parent link.
const NoParent = -1

// Node is one employee (or the virtual root) placed in the tree.
type Node struct {
	domain.Employee

	Index         int
	Parent        int
	Children      []int
	HasChildren   bool
	DirectReports int
	IsVirtualRoot bool
	Metrics       domain.Metrics
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == NoParent }

// Tree is the result of Build: the node arena, an id index, the root and
// the sorted set of levels present.
type Tree struct {
	nodes    []Node
	byID     map[string]int
	root     int
	levels   []int
	orphans  []int
	shadowed int

	// aggregated marks arena slots whose Metrics are final.
	aggregated []bool
}

// Len returns the number of nodes, virtual root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Empty reports whether the tree has no root.
func (t *Tree) Empty() bool { return t.root == NoParent }

// Node returns the node at arena index i.
func (t *Tree) Node(i int) *Node { return &t.nodes[i] }

// Nodes returns every node in arena order. The virtual root, when present,
// comes first; the rest follow roster order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, len(t.nodes))
	for i := range t.nodes {
		out[i] = &t.nodes[i]
	}
	return out
}

// ByID looks a node up by employee id.
func (t *Tree) ByID(id string) (*Node, bool) {
	i, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return &t.nodes[i], true
}

// Root returns the tree root, if any.
func (t *Tree) Root() (*Node, bool) {
	if t.root == NoParent {
		return nil, false
	}
	return &t.nodes[t.root], true
}

// Levels returns the sorted distinct levels of all nodes.
func (t *Tree) Levels() []int {
	out := make([]int, len(t.levels))
	copy(out, t.levels)
	return out
}

// Parent returns n's parent, if any.
func (t *Tree) Parent(n *Node) (*Node, bool) {
	if n.Parent == NoParent {
		return nil, false
	}
	return &t.nodes[n.Parent], true
}

// Children returns n's children in roster order.
func (t *Tree) Children(n *Node) []*Node {
	out := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out[i] = &t.nodes[c]
	}
	return out
}

// Orphans returns nodes unreachable from the root. These are employees
// whose manager chain loops back on itself without reaching a root.
// Walk, VisibleNodes and search never return them.
func (t *Tree) Orphans() []*Node {
	out := make([]*Node, len(t.orphans))
	for i, o := range t.orphans {
		out[i] = &t.nodes[o]
	}
	return out
}

// IsOrphan reports whether n was detached from the tree.
func (t *Tree) IsOrphan(n *Node) bool {
	return n.Parent == NoParent && n.Index != t.root
}

// Shadowed returns how many roster records had their id reused by a later
// record. Shadowed records are still nodes but ByID no longer finds them.
func (t *Tree) Shadowed() int { return t.shadowed }

// RealCount returns the number of nodes excluding the virtual root.
func (t *Tree) RealCount() int {
	n := len(t.nodes)
	if n > 0 && t.nodes[0].IsVirtualRoot {
		n--
	}
	return n
}

// Walk visits every node reachable from the root in pre-order with its
// depth below the root. Returning false from fn skips that node's subtree.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t.root == NoParent {
		return
	}
	var visit func(i, depth int)
	visit = func(i, depth int) {
		n := &t.nodes[i]
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(t.root, 0)
}

// PathToRoot returns the ancestors of n ordered from the root down to n's
// parent. The walk is bounded by the arena size.
func (t *Tree) PathToRoot(n *Node) []*Node {
	var path []*Node
	cur := n
	for steps := 0; cur.Parent != NoParent && steps < len(t.nodes); steps++ {
		cur = &t.nodes[cur.Parent]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
