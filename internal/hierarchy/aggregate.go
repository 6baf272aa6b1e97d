package hierarchy

import (
	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/shopspring/decimal"
)

// Aggregate fills Metrics for every node reachable from the root using a
// post-order walk. Results are memoized per node on the tree, so calling
// Aggregate again before the next Build does no work.
//
// A child's own salary lands in its parent's manager or IC bucket, never
// in its own totals. The virtual root carries no cost of its own.
func Aggregate(t *Tree) {
	if t.root == NoParent {
		return
	}
	t.aggregate(t.root)
}

// Aggregated reports whether the node ByID finds for id has memoized
// metrics.
func (t *Tree) Aggregated(id string) bool {
	i, ok := t.byID[id]
	return ok && t.aggregated[i]
}

func (t *Tree) aggregate(i int) domain.Metrics {
	n := &t.nodes[i]
	if t.aggregated[i] {
		return n.Metrics
	}

	var (
		descendants  int
		nonLeaf      int
		managerCount int
		icCount      int
		managerCost  = decimal.Zero
		icCost       = decimal.Zero
		totalCost    = decimal.Zero
	)

	for _, c := range n.Children {
		child := &t.nodes[c]
		cm := t.aggregate(c)

		descendants += 1 + cm.DescendantCount

		if child.IsVirtualRoot {
			continue
		}
		managerCount += cm.ManagerCount
		icCount += cm.ICCount
		nonLeaf += cm.NonLeafDescendants
		managerCost = managerCost.Add(cm.ManagerCost)
		icCost = icCost.Add(cm.ICCost)
		totalCost = totalCost.Add(cm.TotalCost)

		if child.HasChildren {
			managerCount++
			nonLeaf++
			managerCost = managerCost.Add(child.Salary)
		} else {
			icCount++
			icCost = icCost.Add(child.Salary)
		}
		totalCost = totalCost.Add(child.Salary)
	}

	m := domain.Metrics{
		DescendantCount:     descendants,
		NonLeafDescendants:  nonLeaf,
		ManagerCount:        managerCount,
		ICCount:             icCount,
		ManagerCost:         managerCost,
		ICCost:              icCost,
		TotalCost:           totalCost,
		ManagementCostRatio: domain.CostRatio(icCost, totalCost),
	}
	n.Metrics = m
	t.aggregated[i] = true
	return m
}
