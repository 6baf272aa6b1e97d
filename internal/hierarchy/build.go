package hierarchy

import (
	"sort"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/shopspring/decimal"
)

// Build converts a flat roster into a Tree. It never fails: a manager id
// that is empty, unknown or equal to the employee's own id makes the
// employee a root candidate. When several root candidates exist they are
// placed under a synthesized virtual root. With no candidates at all the
// tree is empty.
//
// Every record gets its own node. Duplicate ids resolve last-write-wins
// in the id index only: ByID and manager lookups see the final record with
// a given id, while earlier records stay in the tree under their own
// managers and are counted in Shadowed.
func Build(employees []domain.Employee) *Tree {
	t := &Tree{
		byID: make(map[string]int, len(employees)+1),
		root: NoParent,
	}

	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		if known[e.ID] {
			t.shadowed++
		}
		known[e.ID] = true
	}

	resolves := func(e *domain.Employee) bool {
		return e.HasManager() && known[e.ManagerID]
	}

	var rootCount int
	for i := range employees {
		if !resolves(&employees[i]) {
			rootCount++
		}
	}

	offset := 0
	if rootCount > 1 {
		offset = 1
	}
	t.nodes = make([]Node, len(employees)+offset)
	if offset == 1 {
		t.nodes[0] = newVirtualRoot()
		t.byID[VirtualRootID] = 0
	}
	for i, e := range employees {
		idx := i + offset
		t.nodes[idx] = Node{
			Employee: e,
			Index:    idx,
			Parent:   NoParent,
			Metrics:  domain.EmptyMetrics(),
		}
		t.byID[e.ID] = idx
	}
	t.aggregated = make([]bool, len(t.nodes))

	var roots []int
	for i := offset; i < len(t.nodes); i++ {
		n := &t.nodes[i]
		if resolves(&n.Employee) {
			mgr := t.byID[n.ManagerID]
			t.nodes[mgr].Children = append(t.nodes[mgr].Children, i)
			n.Parent = mgr
		} else {
			roots = append(roots, i)
		}
	}

	switch {
	case len(roots) == 1:
		t.root = roots[0]
	case len(roots) > 1:
		t.root = 0
		vr := &t.nodes[0]
		vr.Children = roots
		for _, r := range roots {
			t.nodes[r].Parent = 0
		}
	}

	t.detachUnreachable()

	for i := range t.nodes {
		n := &t.nodes[i]
		n.DirectReports = len(n.Children)
		n.HasChildren = n.DirectReports > 0
	}

	t.levels = collectLevels(t.nodes)
	return t
}

func newVirtualRoot() Node {
	return Node{
		Employee: domain.Employee{
			ID:         VirtualRootID,
			Name:       "Organization",
			Level:      0,
			Salary:     decimal.Zero,
			Department: "Root",
			JobTitle:   "Root",
		},
		Index:         0,
		Parent:        NoParent,
		IsVirtualRoot: true,
		Metrics:       domain.EmptyMetrics(),
	}
}

// detachUnreachable clears the links of every node the root cannot reach.
// Only manager cycles produce such nodes; detaching them keeps parent and
// child links acyclic and mutually consistent.
func (t *Tree) detachUnreachable() {
	reached := make([]bool, len(t.nodes))
	if t.root != NoParent {
		stack := []int{t.root}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if reached[i] {
				continue
			}
			reached[i] = true
			stack = append(stack, t.nodes[i].Children...)
		}
	}
	for i := range t.nodes {
		if reached[i] {
			continue
		}
		t.orphans = append(t.orphans, i)
		t.nodes[i].Parent = NoParent
		t.nodes[i].Children = nil
	}
}

func collectLevels(nodes []Node) []int {
	seen := make(map[int]bool)
	var levels []int
	for i := range nodes {
		l := nodes[i].Level
		if !seen[l] {
			seen[l] = true
			levels = append(levels, l)
		}
	}
	sort.Ints(levels)
	return levels
}
