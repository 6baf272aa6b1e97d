package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/alexanderramin/orgscope/internal/interaction"
	"github.com/alexanderramin/orgscope/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Expansion glyphs drawn before a node title.
const (
	MarkerExpanded  = "▾"
	MarkerCollapsed = "▸"
	MarkerLeaf      = "•"
)

// ChartView carries what FormatChart needs beyond the tree rows.
type ChartView struct {
	Rows          []interaction.VisibleRow
	IsExpanded    func(id string) bool
	HighlightedID string
	Cursor        int // row index drawn with a pointer, -1 for none
	Indent        int
	ShowMetrics   bool
}

// FormatChart renders the visible rows as a tree, each employee coloured by
// level with an optional roll-up badge for managers.
func FormatChart(v ChartView) string {
	if len(v.Rows) == 0 {
		return Dim("No employees to show. Import a roster with `orgscope import FILE`.") + "\n"
	}

	items := make([]TreeItem, len(v.Rows))
	for i, row := range v.Rows {
		n := row.Node
		title := n.Name
		if n.JobTitle != "" && !n.IsVirtualRoot {
			title += Dim(" · " + n.JobTitle)
		}
		if i == v.Cursor {
			title = StyleYellow.Render("› ") + title
		}

		marker := MarkerLeaf
		if n.HasChildren {
			marker = MarkerCollapsed
			if v.IsExpanded != nil && v.IsExpanded(n.ID) {
				marker = MarkerExpanded
			}
		}

		detail := ""
		if v.ShowMetrics && n.HasChildren {
			detail = MetricsBadge(n.Metrics)
		}

		items[i] = TreeItem{
			Title:       title,
			Depth:       row.Depth,
			Level:       n.Level,
			IsLast:      isLastSibling(v.Rows, i),
			Marker:      marker,
			Detail:      detail,
			Highlighted: n.ID == v.HighlightedID && v.HighlightedID != "",
		}
	}
	return RenderTree(items, v.Indent)
}

// isLastSibling reports whether no later row shares row i's depth before
// the walk climbs above it.
func isLastSibling(rows []interaction.VisibleRow, i int) bool {
	d := rows[i].Depth
	for j := i + 1; j < len(rows); j++ {
		switch {
		case rows[j].Depth == d:
			return false
		case rows[j].Depth < d:
			return true
		}
	}
	return true
}

// MetricsBadge renders "5 reports · $600 · 0.42".
func MetricsBadge(m domain.Metrics) string {
	noun := "reports"
	if m.DescendantCount == 1 {
		noun = "report"
	}
	return fmt.Sprintf("%s %s · %s · %s", Count(m.DescendantCount), noun, Money(m.TotalCost), m.ManagementCostRatio)
}

// FormatEmployeeList renders employees as a table. Manager names are
// looked up in roster, which may be a superset of employees; nil means
// employees itself.
func FormatEmployeeList(employees, roster []domain.Employee) string {
	if len(employees) == 0 {
		return RenderBox("Employees", Dim("No employees stored."))
	}
	if roster == nil {
		roster = employees
	}

	names := make(map[string]string, len(roster))
	for _, e := range roster {
		names[e.ID] = e.Name
	}

	headers := []string{"ID", "NAME", "TITLE", "LVL", "DEPARTMENT", "MANAGER", "SALARY"}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		manager := Dim("--")
		if e.HasManager() {
			if name, ok := names[e.ManagerID]; ok {
				manager = name
			} else {
				manager = StyleRed.Render(e.ManagerID + "?")
			}
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(e.Name),
			Ellipsize(e.JobTitle, 28),
			LevelBadge(e.Level),
			orDash(e.Department),
			manager,
			Money(e.Salary),
		})
	}

	table := RenderTable(headers, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignRight)
	footer := Dim(fmt.Sprintf("\n%s employees", Count(len(employees))))
	return RenderBox("Employees", table+footer)
}

// FormatEmployee renders one employee card. n may be nil when no chart has
// been built; the reporting line and metrics are then omitted.
func FormatEmployee(e *domain.Employee, t *hierarchy.Tree, n *hierarchy.Node) string {
	var b strings.Builder

	b.WriteString(LevelStyle(e.Level).Bold(true).Render(e.Name) + "  " + LevelBadge(e.Level) + "\n")
	if e.JobTitle != "" {
		b.WriteString(StyleFg.Render(e.JobTitle) + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-10s", label)), value))
	}
	field("ID", e.ID)
	field("DEPARTMENT", orDash(e.Department))
	field("LOCATION", orDash(e.Location))
	field("EMAIL", orDash(e.Email))
	field("SALARY", Money(e.Salary))
	if !e.UpdatedAt.IsZero() {
		field("UPDATED", Dim(HumanTimestamp(e.UpdatedAt)))
	}

	if t != nil && n != nil {
		path := t.PathToRoot(n)
		if len(path) > 0 {
			parts := make([]string, 0, len(path))
			for _, p := range path {
				parts = append(parts, p.Name)
			}
			field("REPORTS TO", strings.Join(parts, Dim(" › ")))
		}
		if n.HasChildren {
			b.WriteString("\n" + Header("Organization") + "\n")
			b.WriteString(formatMetrics(n.DirectReports, n.Metrics))
		}
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func formatMetrics(direct int, m domain.Metrics) string {
	headers := []string{"", "COUNT", "COST"}
	rows := [][]string{
		{"Direct reports", Count(direct), ""},
		{"Managers", Count(m.ManagerCount), Money(m.ManagerCost)},
		{"ICs", Count(m.ICCount), Money(m.ICCost)},
		{Bold("Total"), Bold(Count(m.DescendantCount)), Bold(Money(m.TotalCost))},
	}
	table := RenderTable(headers, rows, AlignLeft, AlignRight, AlignRight)
	return table + fmt.Sprintf("%s  %s\n", StyleDim.Render("IC cost ratio"), StyleBlue.Render(m.ManagementCostRatio))
}

// FormatStats renders the organization summary.
func FormatStats(s *hierarchy.Summary, snap *service.Snapshot) string {
	if s.Headcount == 0 {
		return RenderBox("Organization", Dim("No employees to summarize."))
	}

	var left strings.Builder
	line := func(label, value string) {
		left.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-14s", label)), value))
	}
	line("Headcount", Bold(Count(s.Headcount)))
	line("Managers", Count(s.Managers))
	line("ICs", Count(s.ICs))
	line("Depth", Count(s.MaxDepth))
	line("Span (mean)", fmt.Sprintf("%.1f", s.MeanSpan))
	line("Span (max)", Count(s.MaxSpan))
	line("Total cost", Bold(Money(s.Root.TotalCost)))
	line("IC cost ratio", StyleBlue.Render(s.Root.ManagementCostRatio))
	line("Salary mean", Money(decimal.NewFromFloat(s.MeanSalary).Round(0)))
	line("Salary median", Money(decimal.NewFromFloat(s.MedianSalary).Round(0)))
	line("Salary stddev", Money(decimal.NewFromFloat(s.SalaryStdDev).Round(0)))
	if s.Orphans > 0 {
		line("Orphans", StyleRed.Render(Count(s.Orphans)))
	}
	if snap != nil {
		if snap.Shadowed > 0 {
			line("Duplicates", StyleYellow.Render(Count(snap.Shadowed)))
		}
		line("Built", Dim(HumanTimestamp(snap.BuiltAt)))
	}

	var right strings.Builder
	right.WriteString(Header("Levels") + "\n")
	levels := make([]int, 0, len(s.LevelCounts))
	for l := range s.LevelCounts {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		right.WriteString(fmt.Sprintf("%s  %s\n", LevelBadge(l), RenderShare(s.LevelCounts[l], s.Headcount, 20, LevelStyle(l))))
	}

	if len(s.DepartmentMix) > 0 {
		right.WriteString("\n" + Header("Departments") + "\n")
		depts := make([]string, 0, len(s.DepartmentMix))
		for d := range s.DepartmentMix {
			depts = append(depts, d)
		}
		sort.Slice(depts, func(i, j int) bool {
			if s.DepartmentMix[depts[i]] != s.DepartmentMix[depts[j]] {
				return s.DepartmentMix[depts[i]] > s.DepartmentMix[depts[j]]
			}
			return depts[i] < depts[j]
		})
		for _, d := range depts {
			right.WriteString(fmt.Sprintf("%-16s %s\n", Ellipsize(d, 16), Count(s.DepartmentMix[d])))
		}
	}

	combined := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.TrimRight(left.String(), "\n"), "    ", strings.TrimRight(right.String(), "\n"))
	return RenderBox("Organization", combined)
}

// FormatSearchResults renders search hits with their reporting line.
func FormatSearchResults(query string, t *hierarchy.Tree, hits []*hierarchy.Node) string {
	title := fmt.Sprintf("Search %q", query)
	if len(hits) == 0 {
		return RenderBox(title, Dim("No matches."))
	}

	headers := []string{"ID", "NAME", "TITLE", "LVL", "MANAGER"}
	rows := make([][]string, 0, len(hits))
	for _, n := range hits {
		manager := Dim("--")
		if p, ok := t.Parent(n); ok && !p.IsVirtualRoot {
			manager = p.Name
		}
		rows = append(rows, []string{
			TruncID(n.ID),
			Bold(n.Name),
			Ellipsize(n.JobTitle, 28),
			LevelBadge(n.Level),
			manager,
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatImportResult renders the outcome of a roster import, listing any
// validation warnings.
func FormatImportResult(res *service.ImportResult, snap *service.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Imported %s employees (%s)\n",
		StyleGreen.Render("✔"), Bold(Count(res.Imported)), res.Mode))
	if snap != nil {
		b.WriteString(Dim(fmt.Sprintf("  chart v%d: %s in tree", snap.Version, Count(snap.Headcount))))
		if snap.Orphans > 0 {
			b.WriteString(StyleRed.Render(fmt.Sprintf(", %s orphaned by a manager cycle", Count(snap.Orphans))))
		}
		b.WriteString("\n")
	}
	if len(res.Warnings) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("\n%d warnings:", len(res.Warnings))) + "\n")
		for _, w := range res.Warnings {
			b.WriteString(StyleYellow.Render("  ! ") + w.Error() + "\n")
		}
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
