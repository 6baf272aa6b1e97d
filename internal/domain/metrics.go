package domain

import "github.com/shopspring/decimal"

// ZeroRatio is the cost ratio reported when a subtree carries no cost.
const ZeroRatio = "0.00"

// Metrics holds the roll-up figures for everything strictly below a node.
//
// ManagementCostRatio is icCost/totalCost, i.e. the IC share of cost, even
// though the name suggests the management share. Consumers depend on the
// literal value so the name is kept.
type Metrics struct {
	DescendantCount     int
	NonLeafDescendants  int
	ManagerCount        int
	ICCount             int
	ManagerCost         decimal.Decimal
	ICCost              decimal.Decimal
	TotalCost           decimal.Decimal
	ManagementCostRatio string
}

// EmptyMetrics returns the metrics of a node before aggregation.
func EmptyMetrics() Metrics {
	return Metrics{
		ManagerCost:         decimal.Zero,
		ICCost:              decimal.Zero,
		TotalCost:           decimal.Zero,
		ManagementCostRatio: ZeroRatio,
	}
}

// CostRatio formats part/total to two decimal places, or ZeroRatio when
// total is not positive.
func CostRatio(part, total decimal.Decimal) string {
	if !total.IsPositive() {
		return ZeroRatio
	}
	return part.Div(total).StringFixed(2)
}
