package hierarchy

import (
	"sort"

	"github.com/alexanderramin/orgscope/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Summary is the organization-wide view shown by the stats panel.
type Summary struct {
	Headcount     int
	Managers      int
	ICs           int
	Orphans       int
	MaxDepth      int
	Root          domain.Metrics
	MeanSalary    float64
	MedianSalary  float64
	SalaryStdDev  float64
	MeanSpan      float64
	MaxSpan       int
	LevelCounts   map[int]int
	DepartmentMix map[string]int
}

// Summarize computes a Summary over the nodes reachable from the root.
// Call Aggregate first so Root carries the roll-up metrics.
func Summarize(t *Tree) Summary {
	s := Summary{
		LevelCounts:   make(map[int]int),
		DepartmentMix: make(map[string]int),
		Orphans:       len(t.orphans),
		Root:          domain.EmptyMetrics(),
	}
	if root, ok := t.Root(); ok {
		s.Root = root.Metrics
	}

	var salaries, spans []float64
	t.Walk(func(n *Node, depth int) bool {
		if n.IsVirtualRoot {
			return true
		}
		s.Headcount++
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if n.HasChildren {
			s.Managers++
			spans = append(spans, float64(n.DirectReports))
			if n.DirectReports > s.MaxSpan {
				s.MaxSpan = n.DirectReports
			}
		} else {
			s.ICs++
		}
		s.LevelCounts[n.Level]++
		if n.Department != "" {
			s.DepartmentMix[n.Department]++
		}
		salaries = append(salaries, n.Salary.InexactFloat64())
		return true
	})

	if len(salaries) > 0 {
		sort.Float64s(salaries)
		s.MeanSalary, s.SalaryStdDev = stat.MeanStdDev(salaries, nil)
		s.MedianSalary = median(salaries)
		if len(salaries) == 1 {
			s.SalaryStdDev = 0
		}
	}
	if len(spans) > 0 {
		s.MeanSpan = stat.Mean(spans, nil)
	}
	return s
}

// median expects sorted input. Even counts average the two middle values.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
